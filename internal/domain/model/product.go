package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	CostPrice decimal.Decimal
	Quantity  int
	Expiry    *time.Time // nil when the product does not expire
}

// Validate checks the creation/update invariants. Quantity and prices are
// range-checked here, stock consistency is the catalog's job.
func (p Product) Validate() error {
	if p.ProductID == "" {
		return &ValidationError{Field: "product_id", Reason: "must not be empty"}
	}
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if p.CostPrice.IsNegative() {
		return &ValidationError{Field: "cost_price", Reason: "must not be negative"}
	}
	if p.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	return nil
}

func (p Product) Expired(now time.Time) bool {
	return p.Expiry != nil && p.Expiry.Before(now)
}

// ExpiresWithin reports whether the product expires inside [now, now+window].
func (p Product) ExpiresWithin(now time.Time, window time.Duration) bool {
	if p.Expiry == nil {
		return false
	}
	return !p.Expiry.Before(now) && !p.Expiry.After(now.Add(window))
}
