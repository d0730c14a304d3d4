package config

import (
	"fmt"
	"os"

	"github.com/codedevify/shoe/models"
	"gorm.io/gorm"
)

// Store reads and writes the two configuration singletons. Reads go to
// the database on demand so admin edits take effect on the next
// request without a restart; concurrent edits are last-writer-wins.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Payment returns the payment credential singleton, seeding it from
// env on first access.
func (s *Store) Payment() (*models.PaymentConfig, error) {
	var cfg models.PaymentConfig
	err := s.db.
		Attrs(models.PaymentConfig{
			PublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
			SecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		}).
		FirstOrCreate(&cfg).Error
	if err != nil {
		return nil, fmt.Errorf("load payment config: %w", err)
	}
	return &cfg, nil
}

// Email returns the outbound-mail singleton, seeding it from env on
// first access.
func (s *Store) Email() (*models.EmailConfig, error) {
	var cfg models.EmailConfig
	err := s.db.
		Attrs(models.EmailConfig{
			User:        os.Getenv("EMAIL_USER"),
			Pass:        os.Getenv("EMAIL_PASS"),
			SellerEmail: os.Getenv("SELLER_EMAIL"),
		}).
		FirstOrCreate(&cfg).Error
	if err != nil {
		return nil, fmt.Errorf("load email config: %w", err)
	}
	return &cfg, nil
}

func (s *Store) SavePayment(publishableKey, secretKey string) error {
	cfg, err := s.Payment()
	if err != nil {
		return err
	}
	cfg.PublishableKey = publishableKey
	cfg.SecretKey = secretKey
	return s.db.Save(cfg).Error
}

func (s *Store) SaveEmail(user, pass, sellerEmail string) error {
	cfg, err := s.Email()
	if err != nil {
		return err
	}
	cfg.User = user
	cfg.Pass = pass
	cfg.SellerEmail = sellerEmail
	return s.db.Save(cfg).Error
}
