package cartControllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codedevify/shoe/models"
)

const (
	cartKeyPrefix = "cart:"
	cartTTL       = 24 * time.Hour // matches session cookie lifetime
)

// Store keeps one cart document per session id in redis. Carts are
// ephemeral: they expire with the session, get cleared on payment
// confirmation, or are emptied explicitly by the visitor.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get returns the session's cart, or an empty cart if none exists.
func (s *Store) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := s.rdb.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &cart, nil
}

// Save overwrites the session's cart and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.rdb.Set(ctx, cartKeyPrefix+sessionID, data, cartTTL).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Clear drops the session's cart entirely.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, cartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
