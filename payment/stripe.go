package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/codedevify/shoe/config"
)

const currency = "gbp"

// Provider calls stay bounded; nothing here is user-cancellable
// mid-flight, a timed-out call surfaces a retriable error instead.
const callTimeout = 20 * time.Second

var ErrNotConfigured = errors.New("payment provider is not configured")

// LineItem is one cart line as the provider wants it: unit price in
// minor units (pence).
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// Session is a freshly created hosted checkout session.
type Session struct {
	ID  string
	URL string
}

// SessionStatus is the provider's view of an existing session.
// PaymentRef is the capturable payment reference, empty until paid.
type SessionStatus struct {
	Paid       bool
	PaymentRef string
}

// Client is the hosted-payment-provider boundary.
type Client interface {
	CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error)
	Refund(ctx context.Context, paymentRef string) error
}

// StripeClient drives Stripe hosted checkout. The API client is
// rebuilt from the stored secret key on every call so admin key edits
// apply without a restart; all calls run through a shared breaker.
type StripeClient struct {
	cfg     *config.Store
	breaker *gobreaker.CircuitBreaker[any]
}

func NewStripeClient(cfg *config.Store) *StripeClient {
	return &StripeClient{
		cfg: cfg,
		breaker: gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:    "stripe",
			Timeout: 30 * time.Second,
		}),
	}
}

func (s *StripeClient) api() (*client.API, error) {
	cfg, err := s.cfg.Payment()
	if err != nil {
		return nil, err
	}
	if cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}
	sc := &client.API{}
	sc.Init(cfg.SecretKey, stripe.NewBackends(&http.Client{Timeout: callTimeout}))
	return sc, nil
}

func (s *StripeClient) CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string) (*Session, error) {
	sc, err := s.api()
	if err != nil {
		return nil, err
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx

	result, err := s.breaker.Execute(func() (any, error) {
		return sc.CheckoutSessions.New(params)
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	sess := result.(*stripe.CheckoutSession)
	if sess.URL == "" {
		return nil, errors.New("provider returned empty checkout URL")
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

func (s *StripeClient) RetrieveSession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	sc, err := s.api()
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	result, err := s.breaker.Execute(func() (any, error) {
		return sc.CheckoutSessions.Get(sessionID, params)
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session %s: %w", sessionID, err)
	}

	sess := result.(*stripe.CheckoutSession)
	status := &SessionStatus{Paid: sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid}
	if sess.PaymentIntent != nil {
		status.PaymentRef = sess.PaymentIntent.ID
	}
	return status, nil
}

func (s *StripeClient) Refund(ctx context.Context, paymentRef string) error {
	sc, err := s.api()
	if err != nil {
		return err
	}

	params := &stripe.RefundParams{PaymentIntent: stripe.String(paymentRef)}
	params.Context = ctx

	_, err = s.breaker.Execute(func() (any, error) {
		return sc.Refunds.New(params)
	})
	if err != nil {
		return fmt.Errorf("refund payment %s: %w", paymentRef, err)
	}
	return nil
}
