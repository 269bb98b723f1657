package clickhouse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
	chstore "vehicle-market-lab/internal/storage/clickhouse"
)

func TestListingStore_InsertBulkAndLoadAll(t *testing.T) {
	conn := setupTestDB(t)

	ctx := context.Background()
	store := chstore.NewListingStore(conn, "")

	first := []*domain.Listing{
		{Price: 12000, Odometer: 80000, ModelYear: 2012, Condition: "good", Type: "sedan", Is4WD: ptr(false)},
		{Price: 28000, Odometer: 20000, ModelYear: 2019, Condition: "excellent", Type: "suv", Is4WD: ptr(true)},
	}
	second := []*domain.Listing{
		{Price: 9500, Odometer: 150000, ModelYear: 2008, Condition: "fair", Type: "truck"},
	}

	require.NoError(t, store.InsertBulk(ctx, first))
	require.NoError(t, store.InsertBulk(ctx, second))

	got, err := store.LoadAll(ctx)
	require.NoError(t, err)

	want := append(first, second...)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Price, got[i].Price)
		assert.Equal(t, want[i].ModelYear, got[i].ModelYear)
		assert.Equal(t, want[i].Condition, got[i].Condition)
		assert.Equal(t, want[i].Is4WD, got[i].Is4WD)
	}

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestListingStore_IdentityChangesAfterInsert(t *testing.T) {
	conn := setupTestDB(t)

	ctx := context.Background()
	store := chstore.NewListingStore(conn, "")

	before, err := store.Identity(ctx)
	require.NoError(t, err)

	require.NoError(t, store.InsertBulk(ctx, []*domain.Listing{
		{Price: 1, Odometer: 1, ModelYear: 2000, Condition: "fair", Type: "van"},
	}))

	after, err := store.Identity(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
	assert.Equal(t, domain.SourceClickHouse, after.Kind)
}

func TestListingStore_MissingTable(t *testing.T) {
	conn := setupTestDB(t)

	_, err := chstore.NewListingStore(conn, "missing_listings").LoadAll(context.Background())
	assert.ErrorIs(t, err, storage.ErrSourceMissing)
}
