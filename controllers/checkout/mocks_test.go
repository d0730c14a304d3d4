package checkoutControllers

import (
	"context"

	orderControllers "github.com/codedevify/shoe/controllers/order"
	"github.com/codedevify/shoe/models"
	"github.com/codedevify/shoe/payment"
)

// mockOrderRepo implements orderControllers.Repository for testing
type mockOrderRepo struct {
	created   *models.Order
	createErr error
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = order
	return nil
}

func (m *mockOrderRepo) ByID(_ context.Context, _ string) (*models.Order, error) {
	return nil, orderControllers.ErrOrderNotFound
}

func (m *mockOrderRepo) BySessionRef(_ context.Context, _ string) (*models.Order, error) {
	return nil, orderControllers.ErrOrderNotFound
}

func (m *mockOrderRepo) Save(_ context.Context, _ *models.Order) error {
	return nil
}

func (m *mockOrderRepo) All(_ context.Context) ([]models.Order, error) {
	return nil, nil
}

// mockPaymentClient implements payment.Client for testing
type mockPaymentClient struct {
	session     *payment.Session
	createErr   error
	createCalls int

	gotItems      []payment.LineItem
	gotSuccessURL string
	gotCancelURL  string
}

func (m *mockPaymentClient) CreateCheckoutSession(_ context.Context, items []payment.LineItem, successURL, cancelURL string) (*payment.Session, error) {
	m.createCalls++
	m.gotItems = items
	m.gotSuccessURL = successURL
	m.gotCancelURL = cancelURL
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.session, nil
}

func (m *mockPaymentClient) RetrieveSession(_ context.Context, _ string) (*payment.SessionStatus, error) {
	return &payment.SessionStatus{}, nil
}

func (m *mockPaymentClient) Refund(_ context.Context, _ string) error {
	return nil
}

// mockConfig implements ConfigSource for testing
type mockConfig struct {
	cfg *models.PaymentConfig
	err error
}

func (m *mockConfig) Payment() (*models.PaymentConfig, error) {
	return m.cfg, m.err
}

// mockMailer implements mailer.Service for testing
type mockMailer struct {
	receipts   int
	receiptErr error
	alerts     []string
	alertErr   error
}

func (m *mockMailer) OrderReceipt(_ *models.Order, _ []string, _ string) error {
	m.receipts++
	return m.receiptErr
}

func (m *mockMailer) SellerAlert(subject, _ string) error {
	m.alerts = append(m.alerts, subject)
	return m.alertErr
}

func (m *mockMailer) Reconfigure() {}
