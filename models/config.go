package models

import "time"

// PaymentConfig is a singleton row holding the payment provider
// credential pair. Seeded from env on first access, edited by admins.
type PaymentConfig struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	PublishableKey string    `json:"publishable_key"`
	SecretKey      string    `json:"-"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EmailConfig is a singleton row holding the outbound mail credentials
// and the seller alert recipient.
type EmailConfig struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	User        string    `json:"user"`
	Pass        string    `json:"-"`
	SellerEmail string    `json:"seller_email"`
	UpdatedAt   time.Time `json:"updated_at"`
}
