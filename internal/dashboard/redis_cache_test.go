package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage/storagetest"
)

// setupRedis starts a Redis container and returns a connected client.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: storagetest.RedisAddr(t)})
	require.NoError(t, client.Ping(context.Background()).Err())

	return client, func() { _ = client.Close() }
}

func TestRedisViewCache_RoundTrip(t *testing.T) {
	client, cleanup := setupRedis(t)
	defer cleanup()

	ctx := context.Background()
	c := NewRedisViewCache(client, time.Minute)

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	median := 12500.0
	d := &domain.Dashboard{
		ViewID:        "view-1",
		TotalCount:    10,
		FilteredCount: 4,
		KPI:           domain.KPISummary{Count: 4, MedianPrice: &median},
		Filtered:      []*domain.Listing{{Price: 1, Condition: "good", Type: "sedan"}},
	}
	require.NoError(t, c.Set(ctx, d))

	got, ok, err := c.Get(ctx, "view-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, got.FilteredCount)
	require.NotNil(t, got.KPI.MedianPrice)
	assert.Equal(t, median, *got.KPI.MedianPrice)
	assert.Nil(t, got.Filtered, "rows must not be cached")

	// The caller's dashboard keeps its rows.
	assert.Len(t, d.Filtered, 1)
}

func TestService_WithRedisViewCache(t *testing.T) {
	client, cleanup := setupRedis(t)
	defer cleanup()

	svc, _ := newTestService(t, NewRedisViewCache(client, time.Minute))
	ctx := context.Background()

	first, err := svc.Compute(ctx, fullParams(), Options{})
	require.NoError(t, err)
	second, err := svc.Compute(ctx, fullParams(), Options{})
	require.NoError(t, err)

	assert.Equal(t, first.ViewID, second.ViewID)
	assert.Equal(t, first.FilteredCount, second.FilteredCount)
	assert.True(t, first.ComputedAt.Equal(second.ComputedAt))
}
