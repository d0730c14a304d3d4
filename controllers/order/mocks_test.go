package orderControllers

import (
	"context"

	"github.com/codedevify/shoe/models"
	"github.com/codedevify/shoe/payment"
)

// mockRepo implements Repository for testing
type mockRepo struct {
	orders    map[string]*models.Order
	saveCalls int
	saveErr   error
}

func newMockRepo(orders ...*models.Order) *mockRepo {
	m := &mockRepo{orders: make(map[string]*models.Order)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockRepo) Create(_ context.Context, order *models.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockRepo) ByID(_ context.Context, id string) (*models.Order, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, ErrOrderNotFound
}

func (m *mockRepo) BySessionRef(_ context.Context, ref string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.SessionRef == ref {
			return o, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (m *mockRepo) Save(_ context.Context, order *models.Order) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saveCalls++
	m.orders[order.ID] = order
	return nil
}

func (m *mockRepo) All(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

// mockPayments implements payment.Client for testing
type mockPayments struct {
	status        *payment.SessionStatus
	retrieveErr   error
	retrieveCalls int

	refundErr    error
	refundCalls  int
	refundedRefs []string
}

func (m *mockPayments) CreateCheckoutSession(_ context.Context, _ []payment.LineItem, _, _ string) (*payment.Session, error) {
	return nil, nil
}

func (m *mockPayments) RetrieveSession(_ context.Context, _ string) (*payment.SessionStatus, error) {
	m.retrieveCalls++
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	return m.status, nil
}

func (m *mockPayments) Refund(_ context.Context, paymentRef string) error {
	m.refundCalls++
	m.refundedRefs = append(m.refundedRefs, paymentRef)
	return m.refundErr
}

// mockMail implements mailer.Service for testing
type mockMail struct {
	alerts   []string
	alertErr error
}

func (m *mockMail) OrderReceipt(_ *models.Order, _ []string, _ string) error {
	return nil
}

func (m *mockMail) SellerAlert(subject, _ string) error {
	m.alerts = append(m.alerts, subject)
	return m.alertErr
}

func (m *mockMail) Reconfigure() {}
