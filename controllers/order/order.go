package orderControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	cartControllers "github.com/codedevify/shoe/controllers/cart"
	"github.com/codedevify/shoe/middleware"
)

// GET /success?session_id=...
// Provider redirect target. Reconciles the order behind the session
// and, once paid, clears the visitor's cart.
func SuccessCallbackHandler(m *Manager, carts *cartControllers.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		order, paid, err := m.ReconcileSession(c.Request.Context(), sessionID)
		if errors.Is(err, ErrInvalidLink) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid link"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to verify payment, please retry"})
			return
		}

		if !paid {
			c.JSON(http.StatusAccepted, gin.H{"message": "Payment pending", "order_id": order.ID})
			return
		}

		sid := middleware.SessionID(c)
		if err := carts.Clear(c.Request.Context(), sid); err != nil {
			log.Printf("Failed to clear cart for session %s after payment: %v", sid, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment successful!", "order_id": order.ID})
	}
}

// GET /orders/:orderID/confirm
func ConfirmLinkHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := m.ConfirmByLink(c.Request.Context(), c.Param("orderID"))
		if errors.Is(err, ErrInvalidLink) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid link"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order confirmed", "order_id": order.ID})
	}
}

// GET /orders/:orderID/cancel
func CancelLinkHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := m.Cancel(c.Request.Context(), c.Param("orderID"))
		if errors.Is(err, ErrInvalidLink) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid link"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order_id": order.ID})
	}
}

// GET /admin/orders
func GetAllOrdersHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.All(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// POST /admin/orders/:orderID/confirm
func AdminConfirmHandler(m *Manager) gin.HandlerFunc {
	return ConfirmLinkHandler(m)
}

// POST /admin/orders/:orderID/cancel
func AdminCancelHandler(m *Manager) gin.HandlerFunc {
	return CancelLinkHandler(m)
}
