// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"sync"

	"shipment-tracking-api-server/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Các loại sự kiện đẩy tới dashboard.
const (
	EventShipmentCreated = "shipment.created"
	EventShipmentUpdated = "shipment.updated"
)

// Event là tin nhắn JSON gửi tới mọi dashboard đang kết nối.
type Event struct {
	Type     string          `json:"type"`
	Shipment models.Shipment `json:"shipment"`
}

// Hub quản lý tất cả các client WebSocket.
// Mọi dashboard nhận mọi sự kiện, nên clients được key theo session id
// thay vì theo admin.
type Hub struct {
	clients map[string]*websocket.Conn
	// mu bảo vệ map clients và tuần tự hóa các vòng Broadcast:
	// mỗi connection chỉ chịu được một writer tại một thời điểm.
	mu sync.RWMutex
}

// NewHub tạo một Hub mới.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register thêm một client mới vào Hub.
func (h *Hub) Register(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[sessionID] = conn
	log.Debug().Str("session", sessionID).Msg("WebSocket client registered")
}

// Unregister xóa một client khỏi Hub.
func (h *Hub) Unregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[sessionID]; ok {
		delete(h.clients, sessionID)
		log.Debug().Str("session", sessionID).Msg("WebSocket client unregistered")
	}
}

// Broadcast gửi một sự kiện lô hàng tới mọi client đang kết nối.
// Giữ khóa ghi trong suốt vòng gửi: gorilla/websocket chỉ cho phép một
// writer trên mỗi connection, nên hai Broadcast chạy song song không được
// phép ghi lên cùng một connection. Client lỗi khi ghi không được coi là
// lỗi nghiêm trọng; vòng đọc của connection đó sẽ tự dọn dẹp.
func (h *Hub) Broadcast(eventType string, shipment models.Shipment) {
	message, err := json.Marshal(Event{Type: eventType, Shipment: shipment})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal websocket event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sessionID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Debug().Err(err).Str("session", sessionID).Msg("WebSocket write failed")
		}
	}
}

// Count trả về số client đang kết nối.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
