// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/your-org/ambassador-platform/internal/config"
	"github.com/your-org/ambassador-platform/internal/infrastructure/database/redis"
)

const sessionKeyFormat = "cart:session:%s"

// RedisStore keeps session carts as JSON in Redis, refreshing the TTL
// on every save.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a new Redis-backed cart store
func NewRedisStore(redisClient *redis.Client, cfg *config.Config) *RedisStore {
	return &RedisStore{redis: redisClient, ttl: cfg.Cart.SessionTTL}
}

// Load fetches the stored cart for a session, nil when there is none.
func (r *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	key := fmt.Sprintf(sessionKeyFormat, sessionID)

	data, err := r.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &c, nil
}

// Save stores the cart under its session key.
func (r *RedisStore) Save(ctx context.Context, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	key := fmt.Sprintf(sessionKeyFormat, c.SessionID)
	if err := r.redis.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete drops the stored cart for a session.
func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(sessionKeyFormat, sessionID)
	if err := r.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
