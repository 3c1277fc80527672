package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// cartTTL is how long an untouched cart survives. Every mutation refreshes it.
const cartTTL = 7 * 24 * time.Hour

// RedisCartStore keeps each user's cart in a Redis hash keyed cart:<userID>,
// field = product ID, value = quantity.
type RedisCartStore struct {
	client *redis.Client
}

// NewRedisCartStore creates a new RedisCartStore.
func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{
		client: client,
	}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// IncrQuantity atomically bumps the line quantity via HINCRBY.
func (s *RedisCartStore) IncrQuantity(ctx context.Context, userID, productID string, delta int64) (int64, error) {
	key := cartKey(userID)
	quantity, err := s.client.HIncrBy(ctx, key, productID, delta).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment cart quantity: %w", err)
	}
	if err := s.client.Expire(ctx, key, cartTTL).Err(); err != nil {
		return 0, fmt.Errorf("failed to refresh cart expiry: %w", err)
	}
	return quantity, nil
}

// SetQuantity overwrites the line quantity.
func (s *RedisCartStore) SetQuantity(ctx context.Context, userID, productID string, quantity int64) error {
	key := cartKey(userID)
	if err := s.client.HSet(ctx, key, productID, strconv.FormatInt(quantity, 10)).Err(); err != nil {
		return fmt.Errorf("failed to set cart quantity: %w", err)
	}
	if err := s.client.Expire(ctx, key, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to refresh cart expiry: %w", err)
	}
	return nil
}

// Remove deletes the given lines.
func (s *RedisCartStore) Remove(ctx context.Context, userID string, productIDs ...string) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	removed, err := s.client.HDel(ctx, cartKey(userID), productIDs...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to remove cart lines: %w", err)
	}
	return removed, nil
}

// Clear drops the whole cart.
func (s *RedisCartStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// GetAll returns every line in the cart.
func (s *RedisCartStore) GetAll(ctx context.Context, userID string) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	lines := make(map[string]int64, len(raw))
	for productID, value := range raw {
		quantity, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart quantity for product %s: %w", productID, err)
		}
		lines[productID] = quantity
	}
	return lines, nil
}
