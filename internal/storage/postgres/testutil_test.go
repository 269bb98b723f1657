package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"vehicle-market-lab/internal/storage/migrations"
	pgstore "vehicle-market-lab/internal/storage/postgres"
	"vehicle-market-lab/internal/storage/storagetest"
)

// setupTestDB starts PostgreSQL and creates the listings table through the
// embedded migrations. The pool is closed on cleanup.
func setupTestDB(t *testing.T) *pgstore.Pool {
	t.Helper()

	ctx := context.Background()
	pool, err := pgstore.NewPool(ctx, storagetest.PostgresDSN(t))
	require.NoError(t, err, "failed to create pool")
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.RunPostgresMigrations(ctx, pool, "", zaptest.NewLogger(t)))
	return pool
}

// ptr is a helper to create pointers to values.
func ptr[T any](v T) *T {
	return &v
}
