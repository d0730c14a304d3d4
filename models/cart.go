package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine snapshots name and price at add time; the product row may
// change or disappear independently.
type CartLine struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// Cart is the session-scoped line collection. Lines keep insertion
// order for display; one line per product id.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Add appends a new line for the product or bumps the quantity of the
// existing one.
func (c *Cart) Add(p Product) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
		AddedAt:   time.Now(),
	})
}

// SetQuantity overwrites the quantity of an existing line. Returns
// false if the product has no line in the cart.
func (c *Cart) SetQuantity(productID uint, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Remove deletes the line for the product, preserving the order of the
// remaining lines. Returns false if no line matched.
func (c *Cart) Remove(productID uint) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Total sums price×quantity over all lines, each line rounded half-up
// to the smallest currency unit first so line ordering cannot shift
// the result.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Subtotal is price×quantity rounded to two decimal places.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(2)
}
