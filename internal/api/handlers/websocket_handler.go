// internal/api/handlers/websocket_handler.go
package handlers

import (
	"net/http"
	"time"

	"shipment-tracking-api-server/internal/auth"
	"shipment-tracking-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Thời gian chờ tối đa cho một tin nhắn từ client.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub       *socket.Hub
	JWTSecret []byte
}

// ServeWs nâng cấp kết nối cho dashboard nhận sự kiện lô hàng trực tiếp.
// Trình duyệt không gửi được header Authorization khi mở WebSocket,
// nên token đi qua query string.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return
	}

	if _, err := auth.ParseToken(h.JWTSecret, tokenString); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	// Một admin có thể mở nhiều tab dashboard, nên mỗi kết nối
	// có một session id riêng.
	sessionID := uuid.New().String()
	h.Hub.Register(sessionID, conn)

	defer func() {
		h.Hub.Unregister(sessionID)
		conn.Close()
	}()

	// Heartbeat: client gửi PING, server reset deadline và thư viện
	// tự trả lời PONG.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Vòng lặp đọc giữ kết nối sống và phát hiện client đóng.
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Msg("Unexpected close error")
			}
			break
		}
	}
}
