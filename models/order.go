package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Created at checkout, awaiting payment outcome
	OrderStatusConfirmed OrderStatus = "confirmed" // Terminal
	OrderStatusCancelled OrderStatus = "cancelled" // Terminal
)

// Terminal reports whether no further transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusCancelled
}

type Order struct {
	ID         string          `gorm:"primaryKey" json:"id"` // uuid; also the key of unauthenticated action links
	Items      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total      decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
	Email      string          `json:"email"`
	SessionRef string          `gorm:"uniqueIndex" json:"session_ref"` // hosted payment session id
	PaymentRef string          `json:"payment_ref"`                    // captured payment reference, set once paid
	Status     OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	OrderID   string `gorm:"index" json:"-"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
