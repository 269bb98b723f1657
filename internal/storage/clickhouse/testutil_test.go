package clickhouse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	chstore "vehicle-market-lab/internal/storage/clickhouse"
	"vehicle-market-lab/internal/storage/migrations"
	"vehicle-market-lab/internal/storage/storagetest"
)

// setupTestDB starts ClickHouse and creates the market database and the
// listings table through the embedded migrations.
func setupTestDB(t *testing.T) *chstore.Conn {
	t.Helper()

	dsn := storagetest.ClickHouseDSN(t, "market")
	conn, err := migrations.RunClickhouseMigrations(context.Background(), dsn, "", zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// ptr is a helper to create pointers for test values
func ptr[T any](v T) *T {
	return &v
}
