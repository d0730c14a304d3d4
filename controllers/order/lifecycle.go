package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/codedevify/shoe/mailer"
	"github.com/codedevify/shoe/models"
	"github.com/codedevify/shoe/payment"
)

// ErrInvalidLink covers both an unknown order id and a transition the
// current status forbids. Stale action links render as "invalid link",
// never as a silent success.
var ErrInvalidLink = errors.New("invalid link")

// Manager owns order state transitions. Pending is the only
// non-terminal state: confirm is guarded (a confirm link reused after
// cancellation must not resurrect the order) while cancel tolerates
// repeats because the refund path is safe to retry.
type Manager struct {
	orders   Repository
	payments payment.Client
	mail     mailer.Service
}

func NewManager(orders Repository, payments payment.Client, mail mailer.Service) *Manager {
	return &Manager{orders: orders, payments: payments, mail: mail}
}

// ReconcileSession resolves the order behind a hosted payment session
// after the provider redirects the visitor back. Returns the order and
// whether payment is through. Idempotent: an already confirmed order
// reports paid again without touching anything.
func (m *Manager) ReconcileSession(ctx context.Context, sessionRef string) (*models.Order, bool, error) {
	order, err := m.orders.BySessionRef(ctx, sessionRef)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, false, ErrInvalidLink
	}
	if err != nil {
		return nil, false, err
	}

	switch order.Status {
	case models.OrderStatusConfirmed:
		return order, true, nil
	case models.OrderStatusCancelled:
		return nil, false, ErrInvalidLink
	}

	status, err := m.payments.RetrieveSession(ctx, sessionRef)
	if err != nil {
		return nil, false, fmt.Errorf("reconcile order %s: %w", order.ID, err)
	}
	if !status.Paid {
		return order, false, nil
	}

	order.Status = models.OrderStatusConfirmed
	order.PaymentRef = status.PaymentRef
	if err := m.orders.Save(ctx, order); err != nil {
		return nil, false, err
	}

	broadcastOrderEvent("confirmed", order)
	return order, true, nil
}

// ConfirmByLink handles the buyer's confirm link and the admin confirm
// action. Only a Pending order may be confirmed.
func (m *Manager) ConfirmByLink(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := m.orders.ByID(ctx, orderID)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, ErrInvalidLink
	}
	if err != nil {
		return nil, err
	}

	if order.Status != models.OrderStatusPending {
		return nil, ErrInvalidLink
	}

	order.Status = models.OrderStatusConfirmed
	if err := m.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	m.sellerAlert("Order confirmed",
		fmt.Sprintf("Customer confirmed order %s (total £%s, buyer %s).",
			order.ID, order.Total.StringFixed(2), order.Email))
	broadcastOrderEvent("confirmed", order)
	return order, nil
}

// Cancel handles the buyer's cancel link and the admin cancel action.
// Cancelling an already cancelled order is a harmless no-op state-wise
// but still retries the refund, which is idempotent on the provider
// side. A confirmed order is terminal and cannot be cancelled.
func (m *Manager) Cancel(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := m.orders.ByID(ctx, orderID)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, ErrInvalidLink
	}
	if err != nil {
		return nil, err
	}

	if order.Status == models.OrderStatusConfirmed {
		return nil, ErrInvalidLink
	}

	if order.Status == models.OrderStatusPending {
		order.Status = models.OrderStatusCancelled
		if err := m.orders.Save(ctx, order); err != nil {
			return nil, err
		}
	}

	m.refundIfPaid(ctx, order)

	m.sellerAlert("Order cancelled",
		fmt.Sprintf("Customer cancelled order %s (total £%s, buyer %s); refund issued if applicable.",
			order.ID, order.Total.StringFixed(2), order.Email))
	broadcastOrderEvent("cancelled", order)
	return order, nil
}

// refundIfPaid issues a refund when the payment session shows a
// captured payment. Failures are logged with enough detail for manual
// reconciliation and never block the cancellation.
func (m *Manager) refundIfPaid(ctx context.Context, order *models.Order) {
	status, err := m.payments.RetrieveSession(ctx, order.SessionRef)
	if err != nil {
		log.Printf("❌ Refund check failed for order %s (session %s): %v", order.ID, order.SessionRef, err)
		return
	}
	if !status.Paid || status.PaymentRef == "" {
		return
	}
	if err := m.payments.Refund(ctx, status.PaymentRef); err != nil {
		log.Printf("❌ Refund failed for order %s (session %s, payment %s): %v",
			order.ID, order.SessionRef, status.PaymentRef, err)
	}
}

func (m *Manager) sellerAlert(subject, body string) {
	if err := m.mail.SellerAlert(subject, body); err != nil {
		log.Printf("Seller alert %q failed: %v", subject, err)
	}
}
