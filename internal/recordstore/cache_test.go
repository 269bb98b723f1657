package recordstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
	"vehicle-market-lab/internal/storage/csvfile"
	"vehicle-market-lab/internal/storage/memory"
)

// countingSource records how often LoadAll is called.
type countingSource struct {
	storage.ListingSource

	mu    sync.Mutex
	loads int
}

func (s *countingSource) LoadAll(ctx context.Context) ([]*domain.Listing, error) {
	s.mu.Lock()
	s.loads++
	s.mu.Unlock()
	return s.ListingSource.LoadAll(ctx)
}

func (s *countingSource) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func TestCache_LoadsOncePerIdentity(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewListingStore("fixture")
	require.NoError(t, mem.InsertBulk(ctx, fixture()))

	src := &countingSource{ListingSource: mem}
	cache := NewCache(src, nil)

	first, err := cache.Get(ctx)
	require.NoError(t, err)
	second, err := cache.Get(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.Loads())
}

func TestCache_ConcurrentGetLoadsOnce(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewListingStore("fixture")
	require.NoError(t, mem.InsertBulk(ctx, fixture()))

	src := &countingSource{ListingSource: mem}
	cache := NewCache(src, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, src.Loads())
}

func TestCache_ReloadsOnIdentityChange(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewListingStore("fixture")
	require.NoError(t, mem.InsertBulk(ctx, fixture()))

	cache := NewCache(mem, nil)
	first, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Len())

	require.NoError(t, mem.InsertBulk(ctx, []*domain.Listing{
		{Price: 9000, Odometer: 99000, ModelYear: 2010, Condition: "salvage", Type: "van"},
	}))

	second, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 5, second.Len())
	assert.Contains(t, second.Conditions(), "salvage")
}

func TestCache_ReloadsOnFileModification(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vehicles.csv")

	header := "price,odometer,model_year,condition,type,is_4wd\n"
	require.NoError(t, os.WriteFile(path, []byte(header+"1000,50000,2010,good,sedan,\n"), 0o644))

	cache := NewCache(csvfile.NewSource(path), nil)
	first, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Len())

	require.NoError(t, os.WriteFile(path, []byte(header+"1000,50000,2010,good,sedan,\n2000,40000,2012,fair,truck,1\n"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Len())
	assert.NotEqual(t, first.Source(), second.Source())
}

func TestCache_MissingSource(t *testing.T) {
	cache := NewCache(csvfile.NewSource(filepath.Join(t.TempDir(), "absent.csv")), nil)

	_, err := cache.Get(context.Background())
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, storage.ErrSourceMissing)
}

func TestCache_EmptySource(t *testing.T) {
	cache := NewCache(memory.NewListingStore("empty"), nil)

	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewListingStore("fixture")
	require.NoError(t, mem.InsertBulk(ctx, fixture()))

	src := &countingSource{ListingSource: mem}
	cache := NewCache(src, nil)

	_, err := cache.Get(ctx)
	require.NoError(t, err)
	cache.Invalidate()
	_, err = cache.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, src.Loads())
}
