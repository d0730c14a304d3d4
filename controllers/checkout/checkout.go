package checkoutControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartControllers "github.com/codedevify/shoe/controllers/cart"
	orderControllers "github.com/codedevify/shoe/controllers/order"
	"github.com/codedevify/shoe/mailer"
	"github.com/codedevify/shoe/middleware"
	"github.com/codedevify/shoe/models"
	"github.com/codedevify/shoe/payment"
)

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrPaymentNotConfigured = errors.New("payment provider is not configured")
)

// ConfigSource provides the payment configuration singleton.
type ConfigSource interface {
	Payment() (*models.PaymentConfig, error)
}

// Service converts a cart into a Pending order behind a hosted payment
// session. The provider call happens before anything is persisted: a
// failed call leaves no partial state behind.
type Service struct {
	orders   orderControllers.Repository
	payments payment.Client
	config   ConfigSource
	mail     mailer.Service
}

func NewService(orders orderControllers.Repository, payments payment.Client, config ConfigSource, mail mailer.Service) *Service {
	return &Service{orders: orders, payments: payments, config: config, mail: mail}
}

// Checkout creates the hosted payment session and the Pending order,
// fires the receipt and seller alert best-effort, and returns the
// order together with the hosted checkout URL to redirect to.
func (s *Service) Checkout(ctx context.Context, cart *models.Cart, buyerEmail, baseURL string) (*models.Order, string, error) {
	if cart.Empty() {
		return nil, "", ErrEmptyCart
	}

	cfg, err := s.config.Payment()
	if err != nil {
		return nil, "", err
	}
	if cfg.SecretKey == "" {
		return nil, "", ErrPaymentNotConfigured
	}

	items := make([]payment.LineItem, 0, len(cart.Lines))
	itemNames := make([]string, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, payment.LineItem{
			Name:       line.Name,
			UnitAmount: line.Price.Shift(2).Round(0).IntPart(),
			Quantity:   int64(line.Quantity),
		})
		itemNames = append(itemNames, line.Name)
	}

	successURL := baseURL + "/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := baseURL + "/cart"
	session, err := s.payments.CreateCheckoutSession(ctx, items, successURL, cancelURL)
	if err != nil {
		return nil, "", fmt.Errorf("checkout: %w", err)
	}

	order := &models.Order{
		ID:         uuid.NewString(),
		Total:      cart.Total(),
		Email:      buyerEmail,
		SessionRef: session.ID,
		Status:     models.OrderStatusPending,
		CreatedAt:  time.Now(),
	}
	for _, line := range cart.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, "", err
	}
	orderControllers.BroadcastOrderCreated(order)

	// Email is best-effort, not transactional with order creation.
	if err := s.mail.OrderReceipt(order, itemNames, baseURL); err != nil {
		log.Printf("Receipt for order %s failed: %v", order.ID, err)
	}
	if err := s.mail.SellerAlert("New order received",
		fmt.Sprintf("Order %s: total £%s, buyer %s, items %v, payment session %s.",
			order.ID, order.Total.StringFixed(2), order.Email, itemNames, order.SessionRef)); err != nil {
		log.Printf("Seller alert for order %s failed: %v", order.ID, err)
	}

	return order, session.URL, nil
}

// POST /checkout
// The redirect is a 303 so the browser re-issues a GET against the
// hosted checkout URL.
func CheckoutHandler(svc *Service, carts *cartControllers.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := middleware.SessionID(c)
		cart, err := carts.Get(c.Request.Context(), sid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		email := c.PostForm("email")
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}

		_, redirectURL, err := svc.Checkout(c.Request.Context(), cart, email, requestBaseURL(c))
		switch {
		case errors.Is(err, ErrEmptyCart):
			c.Redirect(http.StatusSeeOther, "/cart")
		case errors.Is(err, ErrPaymentNotConfigured), errors.Is(err, payment.ErrNotConfigured):
			log.Printf("❌ Checkout rejected: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout is currently unavailable"})
		case err != nil:
			log.Printf("❌ Checkout failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment failed"})
		default:
			c.Redirect(http.StatusSeeOther, redirectURL)
		}
	}
}

func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
