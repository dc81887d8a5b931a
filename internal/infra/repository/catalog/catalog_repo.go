package catalog

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/snapshot"
)

const expiryLayout = "2006-01-02"

// Field order is stable for the lifetime of a deployment; new columns go at
// the end so older files keep loading.
var header = []string{"product_id", "name", "price", "cost_price", "quantity", "expiry"}

type IStore interface {
	Get(ctx context.Context, productID string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Upsert(ctx context.Context, product model.Product) error
	Delete(ctx context.Context, productID string) error
	ReserveStock(ctx context.Context, productID string, quantity int) (model.Product, error)
	ReleaseStock(ctx context.Context, productID string, quantity int) error
}

// Store is the single source of truth for price, cost, stock and expiry.
// Every successful mutation is durable before it returns; when the snapshot
// write fails the in-memory change is rolled back and the caller told.
type Store struct {
	mu       sync.RWMutex
	table    *snapshot.Table
	products map[string]model.Product
	order    []string // storage order, kept across upserts
	logger   zerolog.Logger
}

func NewStore(table *snapshot.Table, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		table:    table,
		products: make(map[string]model.Product),
		logger:   logger.With().Str("component", "catalog").Logger(),
	}
	rows, err := table.Load()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		product, err := decodeProduct(row)
		if err != nil {
			return nil, fmt.Errorf("decode product row: %w", err)
		}
		s.products[product.ProductID] = product
		s.order = append(s.order, product.ProductID)
	}
	return s, nil
}

func (s *Store) Get(ctx context.Context, productID string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrProductNotFound, productID)
	}
	return &product, nil
}

// List returns a point-in-time copy in storage order. The order is not
// semantically significant.
func (s *Store) List(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, 0, len(s.order))
	for _, id := range s.order {
		products = append(products, s.products[id])
	}
	return products, nil
}

// Upsert inserts when the identifier is new, otherwise replaces the record
// in place.
func (s *Store) Upsert(ctx context.Context, product model.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if product.Expiry != nil {
		day := product.Expiry.Truncate(24 * time.Hour)
		product.Expiry = &day
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.products[product.ProductID]
	s.products[product.ProductID] = product
	if !existed {
		s.order = append(s.order, product.ProductID)
	}

	if err := s.persistLocked(); err != nil {
		if existed {
			s.products[product.ProductID] = prev
		} else {
			delete(s.products, product.ProductID)
			s.order = s.order[:len(s.order)-1]
		}
		return &model.PersistenceError{Op: "catalog upsert", Err: err}
	}
	return nil
}

// Delete removes the record. Deleting an absent identifier is a no-op.
// Historical order lines keep their own name snapshot and are unaffected.
func (s *Store) Delete(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.products[productID]
	if !existed {
		return nil
	}
	idx := -1
	for i, id := range s.order {
		if id == productID {
			idx = i
			break
		}
	}
	delete(s.products, productID)
	s.order = append(s.order[:idx], s.order[idx+1:]...)

	if err := s.persistLocked(); err != nil {
		s.products[productID] = prev
		s.order = append(s.order, "")
		copy(s.order[idx+1:], s.order[idx:])
		s.order[idx] = productID
		return &model.PersistenceError{Op: "catalog delete", Err: err}
	}
	return nil
}

// ReserveStock atomically checks the requested quantity against current
// stock and decrements on success. This is the only mutation path checkout
// uses. The returned product is the reservation-time snapshot whose name
// and price are authoritative for the order line.
func (s *Store) ReserveStock(ctx context.Context, productID string, quantity int) (model.Product, error) {
	if quantity <= 0 {
		return model.Product{}, &model.ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return model.Product{}, fmt.Errorf("%w: %s", model.ErrProductNotFound, productID)
	}
	if product.Quantity < quantity {
		return model.Product{}, &model.InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: product.Quantity,
		}
	}

	prev := product
	product.Quantity -= quantity
	s.products[productID] = product

	if err := s.persistLocked(); err != nil {
		s.products[productID] = prev
		return model.Product{}, &model.PersistenceError{Op: "catalog reserve", Err: err}
	}
	return product, nil
}

// ReleaseStock restores a reservation after an aborted checkout.
func (s *Store) ReleaseStock(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return &model.ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrProductNotFound, productID)
	}

	prev := product
	product.Quantity += quantity
	s.products[productID] = product

	if err := s.persistLocked(); err != nil {
		s.products[productID] = prev
		return &model.PersistenceError{Op: "catalog release", Err: err}
	}
	return nil
}

func (s *Store) persistLocked() error {
	rows := make([][]string, 0, len(s.order))
	for _, id := range s.order {
		rows = append(rows, encodeProduct(s.products[id]))
	}
	if err := s.table.SaveAtomic(rows); err != nil {
		s.logger.Error().Err(err).Msg("catalog snapshot write failed")
		return err
	}
	return nil
}

func encodeProduct(p model.Product) []string {
	expiry := ""
	if p.Expiry != nil {
		expiry = p.Expiry.UTC().Format(expiryLayout)
	}
	return []string{
		p.ProductID,
		p.Name,
		p.Price.String(),
		p.CostPrice.String(),
		strconv.Itoa(p.Quantity),
		expiry,
	}
}

func decodeProduct(row []string) (model.Product, error) {
	price, err := decimal.NewFromString(row[2])
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid price format: %w", err)
	}
	costPrice := decimal.NewFromInt(0)
	if row[3] != "" {
		costPrice, err = decimal.NewFromString(row[3])
		if err != nil {
			return model.Product{}, fmt.Errorf("invalid cost_price format: %w", err)
		}
	}
	quantity, err := strconv.Atoi(row[4])
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid quantity format: %w", err)
	}
	var expiry *time.Time
	if row[5] != "" {
		d, err := time.ParseInLocation(expiryLayout, row[5], time.UTC)
		if err != nil {
			return model.Product{}, fmt.Errorf("invalid expiry format: %w", err)
		}
		expiry = &d
	}
	return model.Product{
		ProductID: row[0],
		Name:      row[1],
		Price:     price,
		CostPrice: costPrice,
		Quantity:  quantity,
		Expiry:    expiry,
	}, nil
}

// Header exposes the persisted field order so the data directory can be
// initialised with empty tables.
func Header() []string {
	return header
}

var _ IStore = (*Store)(nil)
