package parquetfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
)

func TestSource_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles_clean.parquet")
	yes := true
	listings := []*domain.Listing{
		{Price: 12000, Odometer: 80000, ModelYear: 2012, Condition: "good", Type: "sedan"},
		{Price: 28000, Odometer: 20000, ModelYear: 2019, Condition: "excellent", Type: "suv", Is4WD: &yes},
	}
	require.NoError(t, WriteFile(path, listings))

	got, err := NewSource(path).LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, listings[0].Price, got[0].Price)
	assert.Nil(t, got[0].Is4WD)
	assert.Equal(t, 2019, got[1].ModelYear)
	assert.True(t, got[1].Has4WD())
}

func TestSource_MissingColumns(t *testing.T) {
	type partial struct {
		Price float64 `parquet:"price"`
	}
	path := filepath.Join(t.TempDir(), "partial.parquet")
	require.NoError(t, parquet.WriteFile(path, []partial{{Price: 1}}))

	_, err := NewSource(path).LoadAll(context.Background())

	require.ErrorIs(t, err, storage.ErrSchema)
	assert.Contains(t, err.Error(), "condition")
}

func TestSource_MissingFile(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "missing.parquet"))

	_, err := src.LoadAll(context.Background())
	assert.ErrorIs(t, err, storage.ErrSourceMissing)

	_, err = src.Identity(context.Background())
	assert.ErrorIs(t, err, storage.ErrSourceMissing)
}
