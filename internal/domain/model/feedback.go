package model

import "time"

// Feedback references its product and order by identifier only. Both are
// weak references resolved at read time, never required to still exist.
type Feedback struct {
	ProductID    string
	OrderID      int64 // 0 when the customer did not supply one
	CustomerName string
	Rating       int
	Message      string
	Date         time.Time
}

func (f Feedback) Validate() error {
	if f.ProductID == "" {
		return &ValidationError{Field: "product_id", Reason: "must not be empty"}
	}
	if f.CustomerName == "" {
		return &ValidationError{Field: "customer_name", Reason: "must not be empty"}
	}
	if f.Rating < 1 || f.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	return nil
}
