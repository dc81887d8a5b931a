package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentOnline         PaymentMethod = "Online Payment"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery || m == PaymentOnline
}

// OrderLine is one committed ledger record. ProductName and UnitPrice are
// snapshots taken at sale time, not references into the live catalog, so
// later catalog edits never rewrite history.
type OrderLine struct {
	OrderID       int64
	ProductName   string
	UnitPrice     decimal.Decimal
	Quantity      int
	Total         decimal.Decimal
	Date          time.Time
	PaymentMethod PaymentMethod
}

// Receipt is what a successful checkout hands back to the caller.
type Receipt struct {
	OrderID int64
	Lines   []OrderLine
	Amount  decimal.Decimal
}
