package socket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shipment-tracking-api-server/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	require.Equal(t, 0, hub.Count())

	hub.Register("session-1", nil)
	hub.Register("session-2", nil)
	require.Equal(t, 2, hub.Count())

	hub.Unregister("session-1")
	hub.Unregister("session-1") // unregister lặp lại là no-op
	require.Equal(t, 1, hub.Count())
}

// Mỗi lần create/update đều gọi Broadcast ngay trong handler, nên hai
// request admin song song là hai Broadcast song song lên cùng các
// connection. gorilla/websocket chỉ cho phép một writer; test này chạy
// nhiều Broadcast đồng thời lên một connection thật để bắt ghi chồng chéo
// dưới -race.
func TestHub_ConcurrentBroadcastsSingleConnection(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register("session-1", conn)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	// Phía client phải đọc liên tục để phía server không nghẽn buffer ghi.
	var received atomic.Int64
	go func() {
		for {
			_, data, err := client.ReadMessage()
			if err != nil {
				return
			}
			var event Event
			if err := json.Unmarshal(data, &event); err == nil && event.Type == EventShipmentUpdated {
				received.Add(1)
			}
		}
	}()

	const (
		writers             = 8
		broadcastsPerWriter = 50
	)
	shipment := models.Shipment{TrackingID: "TRK-1", Status: models.StatusPending}

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < broadcastsPerWriter; j++ {
				hub.Broadcast(EventShipmentUpdated, shipment)
			}
		}()
	}
	wg.Wait()

	// Không có lần ghi nào được phép thất bại hay chồng lên nhau.
	require.Eventually(t, func() bool {
		return received.Load() == int64(writers*broadcastsPerWriter)
	}, 5*time.Second, 10*time.Millisecond)
}
