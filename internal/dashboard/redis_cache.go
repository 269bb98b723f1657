package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vehicle-market-lab/internal/domain"
)

// RedisViewCache is a ViewCache shared between server instances.
type RedisViewCache struct {
	client     *redis.Client
	expiration time.Duration
	prefix     string
}

// Compile-time interface check.
var _ ViewCache = (*RedisViewCache)(nil)

// NewRedisViewCache creates a cache over client. Zero expiration keeps entries forever.
func NewRedisViewCache(client *redis.Client, expiration time.Duration) *RedisViewCache {
	return &RedisViewCache{
		client:     client,
		expiration: expiration,
		prefix:     "vehicle-market:view:",
	}
}

// viewKey returns the Redis key for a view id.
func (c *RedisViewCache) viewKey(viewID string) string {
	return c.prefix + viewID
}

// Get retrieves a dashboard stored as JSON.
func (c *RedisViewCache) Get(ctx context.Context, viewID string) (*domain.Dashboard, bool, error) {
	data, err := c.client.Get(ctx, c.viewKey(viewID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get view %s from redis: %w", viewID, err)
	}

	var d domain.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, false, fmt.Errorf("decode cached view %s: %w", viewID, err)
	}
	return &d, true, nil
}

// Set stores d as JSON. Row-level subsets are never written.
func (c *RedisViewCache) Set(ctx context.Context, d *domain.Dashboard) error {
	stripped := *d
	stripped.Filtered = nil
	stripped.Trimmed = nil

	data, err := json.Marshal(&stripped)
	if err != nil {
		return fmt.Errorf("encode view %s: %w", d.ViewID, err)
	}
	if err := c.client.Set(ctx, c.viewKey(d.ViewID), data, c.expiration).Err(); err != nil {
		return fmt.Errorf("set view %s in redis: %w", d.ViewID, err)
	}
	return nil
}

// Backend returns "redis".
func (c *RedisViewCache) Backend() string { return "redis" }
