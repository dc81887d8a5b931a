package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
)

type EventType string

const OrderCommittedEventName EventType = "OrderCommitted"

// OrderCommittedEvent is emitted once per committed checkout, after the
// ledger append is durable. Consumers get snapshots, not references.
type OrderCommittedEvent struct {
	EventID   string            `json:"event_id"`
	EventType EventType         `json:"event_type"`
	OrderID   int64             `json:"order_id"`
	Lines     []model.OrderLine `json:"lines"`
	Amount    decimal.Decimal   `json:"amount"`
	CreatedAt time.Time         `json:"created_at"`
}
