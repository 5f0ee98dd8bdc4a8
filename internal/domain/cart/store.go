// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/franchise-backend/internal/domain/pricing"
)

// Store persists working carts. The Redis adapter is the production store;
// the in-memory adapter backs tests and could back a server-session store
// later.
type Store interface {
	Load(ctx context.Context, ownerKey string) (*Cart, error)
	Save(ctx context.Context, cart *Cart, ttl time.Duration) error
	Delete(ctx context.Context, ownerKey string) error
}

// RedisStore stores carts as JSON blobs with a TTL
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed cart store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(ownerKey string) string {
	return fmt.Sprintf("cart:%s", ownerKey)
}

// Load retrieves a cart; a missing key yields (nil, nil)
func (s *RedisStore) Load(ctx context.Context, ownerKey string) (*Cart, error) {
	data, err := s.client.Get(ctx, s.key(ownerKey)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &cart, nil
}

// Save writes the cart with the given expiry
func (s *RedisStore) Save(ctx context.Context, cart *Cart, ttl time.Duration) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return s.client.Set(ctx, s.key(cart.OwnerKey), data, ttl).Err()
}

// Delete removes the cart
func (s *RedisStore) Delete(ctx context.Context, ownerKey string) error {
	return s.client.Del(ctx, s.key(ownerKey)).Err()
}

// MemoryStore is an in-process Store used by tests
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewMemoryStore creates an empty in-memory cart store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*Cart)}
}

func (s *MemoryStore) Load(ctx context.Context, ownerKey string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[ownerKey]
	if !ok {
		return nil, nil
	}
	clone := *cart
	clone.Items = append([]pricing.Line(nil), cart.Items...)
	return &clone, nil
}

func (s *MemoryStore) Save(ctx context.Context, cart *Cart, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *cart
	clone.Items = append([]pricing.Line(nil), cart.Items...)
	s.carts[cart.OwnerKey] = &clone
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, ownerKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, ownerKey)
	return nil
}
