package feedback

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/snapshot"
)

var header = []string{"product_id", "order_id", "customer_name", "rating", "message", "date"}

type IRepository interface {
	Add(ctx context.Context, f model.Feedback) error
	All(ctx context.Context) ([]model.Feedback, error)
	ByProductID(ctx context.Context, productID string) ([]model.Feedback, error)
}

// Repository stores product feedback. Records reference products and orders
// by identifier only; existence checks belong to the service layer.
type Repository struct {
	mu      sync.RWMutex
	table   *snapshot.Table
	records []model.Feedback
	logger  zerolog.Logger
}

func NewRepository(table *snapshot.Table, logger zerolog.Logger) (*Repository, error) {
	r := &Repository{
		table:  table,
		logger: logger.With().Str("component", "feedback").Logger(),
	}
	rows, err := table.Load()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		record, err := decodeFeedback(row)
		if err != nil {
			return nil, fmt.Errorf("decode feedback row: %w", err)
		}
		r.records = append(r.records, record)
	}
	return r, nil
}

func (r *Repository) Add(ctx context.Context, f model.Feedback) error {
	if err := f.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, f)
	if err := r.persistLocked(); err != nil {
		r.records = r.records[:len(r.records)-1]
		r.logger.Error().Err(err).Msg("feedback snapshot write failed")
		return &model.PersistenceError{Op: "feedback add", Err: err}
	}
	return nil
}

func (r *Repository) All(ctx context.Context) ([]model.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Feedback, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *Repository) ByProductID(ctx context.Context, productID string) ([]model.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Feedback
	for _, record := range r.records {
		if record.ProductID == productID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *Repository) persistLocked() error {
	rows := make([][]string, 0, len(r.records))
	for _, record := range r.records {
		rows = append(rows, encodeFeedback(record))
	}
	return r.table.SaveAtomic(rows)
}

func encodeFeedback(f model.Feedback) []string {
	orderID := ""
	if f.OrderID > 0 {
		orderID = strconv.FormatInt(f.OrderID, 10)
	}
	return []string{
		f.ProductID,
		orderID,
		f.CustomerName,
		strconv.Itoa(f.Rating),
		f.Message,
		f.Date.UTC().Format(time.RFC3339Nano),
	}
}

func decodeFeedback(row []string) (model.Feedback, error) {
	var orderID int64
	if row[1] != "" {
		var err error
		orderID, err = strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return model.Feedback{}, fmt.Errorf("invalid order_id format: %w", err)
		}
	}
	rating, err := strconv.Atoi(row[3])
	if err != nil {
		return model.Feedback{}, fmt.Errorf("invalid rating format: %w", err)
	}
	date, err := time.Parse(time.RFC3339Nano, row[5])
	if err != nil {
		return model.Feedback{}, fmt.Errorf("invalid date format: %w", err)
	}
	return model.Feedback{
		ProductID:    row[0],
		OrderID:      orderID,
		CustomerName: row[2],
		Rating:       rating,
		Message:      row[4],
		Date:         date,
	}, nil
}

func Header() []string {
	return header
}

var _ IRepository = (*Repository)(nil)
