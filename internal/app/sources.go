// Package app wires configuration to concrete listing sources and caches.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vehicle-market-lab/internal/config"
	"vehicle-market-lab/internal/dashboard"
	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
	chstore "vehicle-market-lab/internal/storage/clickhouse"
	"vehicle-market-lab/internal/storage/csvfile"
	"vehicle-market-lab/internal/storage/memory"
	"vehicle-market-lab/internal/storage/parquetfile"
	pgstore "vehicle-market-lab/internal/storage/postgres"
)

// OpenSource creates the listing source selected by cfg.
// The returned cleanup must be called once the source is no longer used.
func OpenSource(ctx context.Context, cfg *config.Config) (storage.ListingSource, func(), error) {
	switch cfg.DataSource {
	case domain.SourceCSV:
		return csvfile.NewSource(cfg.DataPath), func() {}, nil

	case domain.SourceParquet:
		return parquetfile.NewSource(cfg.DataPath), func() {}, nil

	case domain.SourceMemory:
		return memory.NewListingStore(cfg.Table), func() {}, nil

	case domain.SourcePostgres, domain.SourceClickHouse:
		store, cleanup, err := OpenStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}

// OpenStore connects to the database store selected by cfg.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.ListingStore, func(), error) {
	switch cfg.DataSource {
	case domain.SourcePostgres:
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return pgstore.NewListingStore(pool, cfg.Table), pool.Close, nil

	case domain.SourceClickHouse:
		conn, err := chstore.NewConn(ctx, cfg.ClickHouseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		return chstore.NewListingStore(conn, cfg.Table), func() { conn.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("data source %q is not a database", cfg.DataSource)
	}
}

// OpenViewCache creates the view cache selected by cfg.
// Redis is used when REDIS_ADDR is set; otherwise an in-memory cache of
// VIEW_CACHE_SIZE entries. A zero size without Redis disables caching.
func OpenViewCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (dashboard.ViewCache, func(), error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("view cache: redis", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.ViewCacheTTL))
		return dashboard.NewRedisViewCache(client, cfg.ViewCacheTTL), func() { _ = client.Close() }, nil
	}

	if cfg.ViewCacheSize == 0 {
		logger.Info("view cache disabled")
		return nil, func() {}, nil
	}

	cache, err := dashboard.NewMemoryViewCache(cfg.ViewCacheSize)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("view cache: memory", zap.Int("size", cfg.ViewCacheSize))
	return cache, cache.Close, nil
}
