// Package cartstore keeps per-session carts for the presentation layer.
// Carts are transient by design: losing this store loses carts, never
// committed orders or stock.
package cartstore

import (
	"context"
	"errors"
	"sync"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
)

var ErrCartNotExist = errors.New("cart is not exist")

type IStore interface {
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	Save(ctx context.Context, sessionID string, cart *model.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is the single-instance default.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*model.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*model.Cart)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, ErrCartNotExist
	}
	return cart, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, cart *model.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[sessionID] = cart
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

var _ IStore = (*MemoryStore)(nil)
