package checkoutControllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderControllers "github.com/codedevify/shoe/controllers/order"
	"github.com/codedevify/shoe/models"
)

// A successful checkout must show up on the admin order feed.
func TestCheckout_AnnouncesCreatedOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/orders/ws", orderControllers.OrderWebSocketHandler)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/admin/orders/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	// Give the handler a moment to register the connection.
	time.Sleep(50 * time.Millisecond)

	repo, pay, cfg, mail := workingMocks()
	svc := newTestService(repo, pay, cfg, mail)
	cart := cartOf(models.CartLine{ProductID: 1, Name: "Nike Air Max", Price: price("120.00"), Quantity: 1})

	order, _, err := svc.Checkout(context.Background(), cart, "buyer@example.com", "https://shop.example")
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Event string        `json:"event"`
		Order *models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, "created", ev.Event)
	assert.Equal(t, order.ID, ev.Order.ID)
}
