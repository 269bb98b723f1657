package dashboard

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"

	"vehicle-market-lab/internal/domain"
)

// ViewCache memoises computed dashboards by view id.
// Cached dashboards are shared and must not be modified.
type ViewCache interface {
	// Get returns the dashboard for viewID. ok is false on a miss.
	Get(ctx context.Context, viewID string) (d *domain.Dashboard, ok bool, err error)

	// Set stores a dashboard under its ViewID.
	Set(ctx context.Context, d *domain.Dashboard) error

	// Backend names the cache implementation for metrics.
	Backend() string
}

// MemoryViewCache is a bounded in-process ViewCache.
type MemoryViewCache struct {
	cache *ristretto.Cache
}

// NewMemoryViewCache creates a cache holding roughly size dashboards.
func NewMemoryViewCache(size int) (*MemoryViewCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("view cache size must be positive, got %d", size)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(size) * 10,
		MaxCost:     int64(size),
		BufferItems: 64,

		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create view cache: %w", err)
	}
	return &MemoryViewCache{cache: cache}, nil
}

// Compile-time interface check.
var _ ViewCache = (*MemoryViewCache)(nil)

// Get returns a cached dashboard.
func (c *MemoryViewCache) Get(_ context.Context, viewID string) (*domain.Dashboard, bool, error) {
	v, ok := c.cache.Get(viewID)
	if !ok {
		return nil, false, nil
	}
	d, ok := v.(*domain.Dashboard)
	return d, ok, nil
}

// Set stores d with unit cost. The write is visible to Get once Set returns.
func (c *MemoryViewCache) Set(_ context.Context, d *domain.Dashboard) error {
	c.cache.Set(d.ViewID, d, 1)
	c.cache.Wait()
	return nil
}

// Backend returns "memory".
func (c *MemoryViewCache) Backend() string { return "memory" }

// Close releases the cache goroutines.
func (c *MemoryViewCache) Close() {
	c.cache.Close()
}
