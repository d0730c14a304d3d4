package orderControllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startOrderFeed(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/orders/ws", OrderWebSocketHandler)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/admin/orders/ws"
}

func dialOrderFeed(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	// Give the handler a moment to register the connection.
	time.Sleep(50 * time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) orderEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev orderEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestOrderFeed_DeliversLifecycleEvents(t *testing.T) {
	conn := dialOrderFeed(t, startOrderFeed(t))
	order := pendingOrder()

	broadcastOrderEvent("cancelled", order)

	ev := readEvent(t, conn)
	assert.Equal(t, "cancelled", ev.Event)
	assert.Equal(t, order.ID, ev.Order.ID)
}

func TestOrderFeed_CreatedEvent(t *testing.T) {
	conn := dialOrderFeed(t, startOrderFeed(t))
	order := pendingOrder()

	BroadcastOrderCreated(order)

	ev := readEvent(t, conn)
	assert.Equal(t, "created", ev.Event)
	assert.Equal(t, order.ID, ev.Order.ID)
}

// Broadcasts race against dashboards connecting and dropping off; the
// registry must survive the churn and shed connections that fail a
// write.
func TestOrderFeed_ConcurrentBroadcastAndChurn(t *testing.T) {
	url := startOrderFeed(t)
	order := pendingOrder()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				broadcastOrderEvent("confirmed", order)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				conn, _, err := websocket.DefaultDialer.Dial(url, nil)
				if err != nil {
					continue
				}
				conn.Close()
			}
		}()
	}
	wg.Wait()
}
