package recordstore

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/observability"
	"vehicle-market-lab/internal/storage"
)

// LoadError reports that the record store could not be built from its source.
type LoadError struct {
	Source domain.SourceIdentity
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source.Location == "" {
		return fmt.Sprintf("load record store: %v", e.Err)
	}
	return fmt.Sprintf("load record store from %s: %v", e.Source.Location, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Cache loads a Store from a source at most once per source identity.
type Cache struct {
	source storage.ListingSource
	logger *zap.Logger

	mu      sync.Mutex
	current *Store
}

// NewCache creates a cache over source. A nil logger disables logging.
func NewCache(source storage.ListingSource, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		source: source,
		logger: logger.With(zap.String("component", "recordstore")),
	}
}

// Get returns the store for the current source identity.
// The source is read again only when its identity changed since the last load.
// Concurrent callers wait for a single load.
func (c *Cache) Get(ctx context.Context) (*Store, error) {
	id, err := c.source.Identity(ctx)
	if err != nil {
		observability.RecordStoreLoad(false, 0)
		return nil, &LoadError{Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.Source() == id {
		return c.current, nil
	}

	listings, err := c.source.LoadAll(ctx)
	if err != nil {
		observability.RecordStoreLoad(false, 0)
		c.logger.Error("load listings failed", zap.Stringer("source", id), zap.Error(err))
		return nil, &LoadError{Source: id, Err: err}
	}

	store, err := New(id, listings)
	if err != nil {
		observability.RecordStoreLoad(false, 0)
		c.logger.Error("build record store failed", zap.Stringer("source", id), zap.Error(err))
		return nil, &LoadError{Source: id, Err: err}
	}

	observability.RecordStoreLoad(true, store.Len())
	c.logger.Info("record store loaded",
		zap.Stringer("source", id),
		zap.Int("rows", store.Len()),
		zap.Int("conditions", len(store.Conditions())),
		zap.Int("types", len(store.Types())),
	)

	c.current = store
	return store, nil
}

// Invalidate drops the cached store so the next Get reloads.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}
