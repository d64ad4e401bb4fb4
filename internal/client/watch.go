// internal/client/watch.go
package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"shipment-tracking-api-server/internal/socket"

	"github.com/gorilla/websocket"
)

// Chu kỳ gửi PING để giữ kết nối (server chờ tối đa 30s).
const pingInterval = 20 * time.Second

// Watch mở kết nối WebSocket tới feed sự kiện lô hàng của admin và trả về
// một channel sự kiện. Channel đóng khi ctx bị hủy hoặc kết nối đứt.
func (c *Client) Watch(ctx context.Context) (<-chan socket.Event, error) {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1)
	wsURL += "/api/admin/ws?token=" + url.QueryEscape(c.tokens.Token())

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, err
	}

	events := make(chan socket.Event)

	// Gửi PING định kỳ và đóng kết nối khi ctx bị hủy.
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				conn.Close()
				return
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					conn.Close()
					return
				}
			}
		}
	}()

	go func() {
		defer close(events)
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var event socket.Event
			if err := json.Unmarshal(data, &event); err != nil {
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}
