package checkoutControllers

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codedevify/shoe/models"
	"github.com/codedevify/shoe/payment"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cartOf(lines ...models.CartLine) *models.Cart {
	return &models.Cart{Lines: lines}
}

func newTestService(repo *mockOrderRepo, pay *mockPaymentClient, cfg *mockConfig, mail *mockMailer) *Service {
	return NewService(repo, pay, cfg, mail)
}

func workingMocks() (*mockOrderRepo, *mockPaymentClient, *mockConfig, *mockMailer) {
	repo := &mockOrderRepo{}
	pay := &mockPaymentClient{session: &payment.Session{ID: "cs_test_123", URL: "https://pay.example/cs_test_123"}}
	cfg := &mockConfig{cfg: &models.PaymentConfig{PublishableKey: "pk_test", SecretKey: "sk_test"}}
	mail := &mockMailer{}
	return repo, pay, cfg, mail
}

func TestCheckout_TotalSumsRoundedLines(t *testing.T) {
	repo, pay, cfg, mail := workingMocks()
	svc := newTestService(repo, pay, cfg, mail)

	cart := cartOf(
		models.CartLine{ProductID: 1, Name: "Nike Air Max", Price: price("120.00"), Quantity: 1},
		models.CartLine{ProductID: 4, Name: "Reebok Classic", Price: price("80.00"), Quantity: 2},
	)

	order, url, err := svc.Checkout(context.Background(), cart, "buyer@example.com", "https://shop.example")

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/cs_test_123", url)
	assert.Equal(t, "280.00", order.Total.StringFixed(2))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "cs_test_123", order.SessionRef)
	assert.Equal(t, "buyer@example.com", order.Email)

	require.NotNil(t, repo.created)
	assert.Equal(t, order.ID, repo.created.ID)

	// Provider gets one line per cart line, unit prices in pence.
	require.Len(t, pay.gotItems, 2)
	assert.Equal(t, int64(12000), pay.gotItems[0].UnitAmount)
	assert.Equal(t, int64(1), pay.gotItems[0].Quantity)
	assert.Equal(t, int64(8000), pay.gotItems[1].UnitAmount)
	assert.Equal(t, int64(2), pay.gotItems[1].Quantity)
}

func TestCheckout_TotalIndependentOfLineOrder(t *testing.T) {
	forward := cartOf(
		models.CartLine{ProductID: 1, Name: "A", Price: price("19.99"), Quantity: 3},
		models.CartLine{ProductID: 2, Name: "B", Price: price("0.35"), Quantity: 7},
	)
	reversed := cartOf(forward.Lines[1], forward.Lines[0])

	totals := make([]string, 0, 2)
	for _, cart := range []*models.Cart{forward, reversed} {
		repo, pay, cfg, mail := workingMocks()
		svc := newTestService(repo, pay, cfg, mail)
		order, _, err := svc.Checkout(context.Background(), cart, "buyer@example.com", "https://shop.example")
		require.NoError(t, err)
		totals = append(totals, order.Total.StringFixed(2))
	}
	assert.Equal(t, totals[0], totals[1])
}

func TestCheckout_EmptyCart(t *testing.T) {
	repo, pay, cfg, mail := workingMocks()
	svc := newTestService(repo, pay, cfg, mail)

	_, _, err := svc.Checkout(context.Background(), &models.Cart{}, "buyer@example.com", "https://shop.example")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, pay.createCalls)
	assert.Nil(t, repo.created)
}

func TestCheckout_MissingSecretKey(t *testing.T) {
	repo, pay, _, mail := workingMocks()
	cfg := &mockConfig{cfg: &models.PaymentConfig{PublishableKey: "pk_test"}}
	svc := newTestService(repo, pay, cfg, mail)

	cart := cartOf(models.CartLine{ProductID: 1, Name: "A", Price: price("50.00"), Quantity: 1})
	_, _, err := svc.Checkout(context.Background(), cart, "buyer@example.com", "https://shop.example")

	assert.ErrorIs(t, err, ErrPaymentNotConfigured)
	assert.Zero(t, pay.createCalls, "provider must not be called without a secret key")
	assert.Nil(t, repo.created, "no order may be persisted")
}

func TestCheckout_ProviderFailureLeavesNoState(t *testing.T) {
	repo, pay, cfg, mail := workingMocks()
	pay.createErr = errors.New("connection refused")
	svc := newTestService(repo, pay, cfg, mail)

	cart := cartOf(models.CartLine{ProductID: 1, Name: "A", Price: price("50.00"), Quantity: 1})
	_, _, err := svc.Checkout(context.Background(), cart, "buyer@example.com", "https://shop.example")

	assert.Error(t, err)
	assert.Nil(t, repo.created, "no order may be persisted after a provider failure")
	assert.Zero(t, mail.receipts)
}

func TestCheckout_MailFailureIsNonFatal(t *testing.T) {
	repo, pay, cfg, mail := workingMocks()
	mail.receiptErr = errors.New("smtp down")
	mail.alertErr = errors.New("smtp down")
	svc := newTestService(repo, pay, cfg, mail)

	cart := cartOf(models.CartLine{ProductID: 1, Name: "A", Price: price("50.00"), Quantity: 1})
	order, url, err := svc.Checkout(context.Background(), cart, "buyer@example.com", "https://shop.example")

	require.NoError(t, err, "email delivery is best-effort")
	assert.NotNil(t, order)
	assert.NotEmpty(t, url)
	assert.NotNil(t, repo.created)
	assert.Equal(t, 1, mail.receipts)
}

func TestCheckout_CallbackURLs(t *testing.T) {
	repo, pay, cfg, mail := workingMocks()
	svc := newTestService(repo, pay, cfg, mail)

	cart := cartOf(models.CartLine{ProductID: 1, Name: "A", Price: price("50.00"), Quantity: 1})
	_, _, err := svc.Checkout(context.Background(), cart, "buyer@example.com", "https://shop.example")

	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/success?session_id={CHECKOUT_SESSION_ID}", pay.gotSuccessURL)
	assert.Equal(t, "https://shop.example/cart", pay.gotCancelURL)
}
