package ledger

import (
	"context"
	"fmt"
	"iter"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/snapshot"
)

var header = []string{"order_id", "product_name", "price", "quantity", "total", "date", "payment_method"}

type ILedger interface {
	NextOrderID() int64
	Append(ctx context.Context, orderID int64, lines []model.OrderLine) error
	All(ctx context.Context) ([]model.OrderLine, error)
	ByProductName(name string) iter.Seq[model.OrderLine]
	LastOrderID() int64
}

// Ledger is the append-mostly history of committed sales. Identifiers come
// from a counter seeded from the persisted maximum, never from re-scanning
// records at allocation time, so concurrent commits cannot collide.
type Ledger struct {
	mu     sync.Mutex
	table  *snapshot.Table
	lines  []model.OrderLine
	nextID int64
	logger zerolog.Logger
}

func NewLedger(table *snapshot.Table, logger zerolog.Logger) (*Ledger, error) {
	l := &Ledger{
		table:  table,
		nextID: 1,
		logger: logger.With().Str("component", "ledger").Logger(),
	}
	rows, err := table.Load()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		line, err := decodeLine(row)
		if err != nil {
			return nil, fmt.Errorf("decode order line: %w", err)
		}
		l.lines = append(l.lines, line)
		if line.OrderID >= l.nextID {
			l.nextID = line.OrderID + 1
		}
	}
	return l, nil
}

// NextOrderID allocates an identifier. Allocation is consumption: the id is
// never handed out again, even if the checkout that asked for it fails
// before its lines land. Gaps are acceptable, reuse is not.
func (l *Ledger) NextOrderID() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	return id
}

// LastOrderID reports the highest identifier allocated so far, 0 when none.
func (l *Ledger) LastOrderID() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nextID - 1
}

// Append writes all lines of one order as a durable batch. Either every
// line is visible to subsequent reads or none is.
func (l *Ledger) Append(ctx context.Context, orderID int64, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return &model.ValidationError{Field: "lines", Reason: "must not be empty"}
	}
	for i := range lines {
		if lines[i].Quantity <= 0 {
			return &model.ValidationError{Field: "quantity", Reason: "must be positive"}
		}
		lines[i].OrderID = orderID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prevLen := len(l.lines)
	l.lines = append(l.lines, lines...)

	if err := l.persistLocked(); err != nil {
		l.lines = l.lines[:prevLen]
		l.logger.Error().Err(err).Int64("order_id", orderID).Msg("ledger snapshot write failed")
		return &model.PersistenceError{Op: "ledger append", Err: err}
	}
	return nil
}

// All returns a point-in-time copy in append order.
func (l *Ledger) All(ctx context.Context) ([]model.OrderLine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.OrderLine, len(l.lines))
	copy(out, l.lines)
	return out, nil
}

// ByProductName is a restartable filtered view over a snapshot taken when
// it is called. It never consumes from the ledger.
func (l *Ledger) ByProductName(name string) iter.Seq[model.OrderLine] {
	l.mu.Lock()
	lines := make([]model.OrderLine, len(l.lines))
	copy(lines, l.lines)
	l.mu.Unlock()

	return func(yield func(model.OrderLine) bool) {
		for _, line := range lines {
			if line.ProductName != name {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

func (l *Ledger) persistLocked() error {
	rows := make([][]string, 0, len(l.lines))
	for _, line := range l.lines {
		rows = append(rows, encodeLine(line))
	}
	return l.table.SaveAtomic(rows)
}

func encodeLine(line model.OrderLine) []string {
	return []string{
		strconv.FormatInt(line.OrderID, 10),
		line.ProductName,
		line.UnitPrice.String(),
		strconv.Itoa(line.Quantity),
		line.Total.String(),
		line.Date.UTC().Format(time.RFC3339Nano),
		string(line.PaymentMethod),
	}
}

func decodeLine(row []string) (model.OrderLine, error) {
	orderID, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("invalid order_id format: %w", err)
	}
	price, err := decimal.NewFromString(row[2])
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("invalid price format: %w", err)
	}
	quantity, err := strconv.Atoi(row[3])
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("invalid quantity format: %w", err)
	}
	total, err := decimal.NewFromString(row[4])
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("invalid total format: %w", err)
	}
	date, err := time.Parse(time.RFC3339Nano, row[5])
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("invalid date format: %w", err)
	}
	return model.OrderLine{
		OrderID:       orderID,
		ProductName:   row[1],
		UnitPrice:     price,
		Quantity:      quantity,
		Total:         total,
		Date:          date,
		PaymentMethod: model.PaymentMethod(row[6]),
	}, nil
}

func Header() []string {
	return header
}

var _ ILedger = (*Ledger)(nil)
