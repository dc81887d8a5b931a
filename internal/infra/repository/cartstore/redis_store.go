package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
)

const cartTTL = 24 * time.Hour

// RedisStore shares session carts between frontend instances. Carts expire
// after a day of inactivity.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(sessionID string) string {
	return fmt.Sprintf("%s:cart:%s", s.prefix, sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	payload, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCartNotExist
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	var cart model.Cart
	if err := json.Unmarshal([]byte(payload), &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &cart, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, cart *model.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), payload, cartTTL).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

var _ IStore = (*RedisStore)(nil)
