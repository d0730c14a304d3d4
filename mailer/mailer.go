package mailer

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/gomail.v2"

	"github.com/codedevify/shoe/config"
	"github.com/codedevify/shoe/models"
)

// Service sends transactional mail. Every send is best-effort: callers
// log the returned error and carry on, a broken mail setup must never
// block checkout or an order transition.
type Service interface {
	// OrderReceipt mails the buyer their receipt with confirm/cancel
	// action links keyed by the order id.
	OrderReceipt(order *models.Order, itemNames []string, baseURL string) error
	// SellerAlert mails the configured alert recipient.
	SellerAlert(subject, body string) error
	// Reconfigure drops the cached dialer so the next send picks up
	// freshly edited credentials.
	Reconfigure()
}

// SMTP is the gomail-backed Service. The dialer is built lazily from
// the email config singleton and cached until Reconfigure.
type SMTP struct {
	cfg *config.Store

	mu     sync.Mutex
	dialer *gomail.Dialer
	from   string
	seller string
}

func NewSMTP(cfg *config.Store) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) Reconfigure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialer = nil
}

func (s *SMTP) transport() (*gomail.Dialer, string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dialer != nil {
		return s.dialer, s.from, s.seller, nil
	}

	cfg, err := s.cfg.Email()
	if err != nil {
		return nil, "", "", err
	}
	if cfg.User == "" || cfg.Pass == "" {
		return nil, "", "", fmt.Errorf("email credentials missing")
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	s.dialer = gomail.NewDialer(host, port, cfg.User, cfg.Pass)
	s.from = cfg.User
	s.seller = cfg.SellerEmail
	return s.dialer, s.from, s.seller, nil
}

func (s *SMTP) send(to, subject, htmlBody string) error {
	dialer, from, _, err := s.transport()
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return dialer.DialAndSend(m)
}

func (s *SMTP) OrderReceipt(order *models.Order, itemNames []string, baseURL string) error {
	confirmURL := fmt.Sprintf("%s/orders/%s/confirm", baseURL, order.ID)
	cancelURL := fmt.Sprintf("%s/orders/%s/cancel", baseURL, order.ID)

	body := fmt.Sprintf(
		`<h3>Order #%s</h3>
<p>Items: %s</p>
<p>Total: £%s</p>
<p><a href="%s">Confirm your order</a> | <a href="%s">Cancel your order</a></p>`,
		order.ID, strings.Join(itemNames, ", "), order.Total.StringFixed(2), confirmURL, cancelURL,
	)
	return s.send(order.Email, "Order Received", body)
}

func (s *SMTP) SellerAlert(subject, body string) error {
	_, _, seller, err := s.transport()
	if err != nil {
		return err
	}
	if seller == "" {
		return fmt.Errorf("seller alert recipient not configured")
	}
	return s.send(seller, subject, body)
}
