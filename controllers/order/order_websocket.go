// order_websocket.go
package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/codedevify/shoe/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsClient serializes writes: gorilla allows one concurrent writer per
// connection.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*wsClient]bool)
)

type orderEvent struct {
	Event string        `json:"event"` // created | confirmed | cancelled
	Order *models.Order `json:"order"`
}

// OrderWebSocketHandler streams order lifecycle events to connected
// admin dashboards.
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	client := &wsClient{conn: conn}
	wsMu.Lock()
	wsClients[client] = true
	wsMu.Unlock()
	defer func() {
		wsMu.Lock()
		delete(wsClients, client)
		wsMu.Unlock()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func broadcastOrderEvent(event string, order *models.Order) {
	data, err := json.Marshal(orderEvent{Event: event, Order: order})
	if err != nil {
		return
	}

	// Snapshot under the lock, write outside it: no lock is held while
	// network I/O is in flight.
	wsMu.Lock()
	clients := make([]*wsClient, 0, len(wsClients))
	for client := range wsClients {
		clients = append(clients, client)
	}
	wsMu.Unlock()

	for _, client := range clients {
		if err := client.write(data); err != nil {
			wsMu.Lock()
			delete(wsClients, client)
			wsMu.Unlock()
		}
	}
}

// BroadcastOrderCreated announces a freshly persisted order on the
// admin feed. Called by the checkout flow, which owns order creation.
func BroadcastOrderCreated(order *models.Order) {
	broadcastOrderEvent("created", order)
}
