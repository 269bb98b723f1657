package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/recordstore"
	"vehicle-market-lab/internal/storage/memory"
)

func ptr[T any](v T) *T {
	return &v
}

func fixtureListings() []*domain.Listing {
	return []*domain.Listing{
		{Price: 5000, Odometer: 150000, ModelYear: 2005, Condition: "fair", Type: "sedan", Is4WD: ptr(false)},
		{Price: 12000, Odometer: 90000, ModelYear: 2011, Condition: "good", Type: "sedan", Is4WD: ptr(false)},
		{Price: 18000, Odometer: 60000, ModelYear: 2014, Condition: "good", Type: "SUV", Is4WD: ptr(true)},
		{Price: 25000, Odometer: 30000, ModelYear: 2017, Condition: "excellent", Type: "SUV", Is4WD: ptr(true)},
		{Price: 31000, Odometer: 15000, ModelYear: 2019, Condition: "excellent", Type: "truck", Is4WD: ptr(true)},
		{Price: 9000, Odometer: 120000, ModelYear: 2009, Condition: "good", Type: "truck"},
		{Price: 14000, Odometer: 70000, ModelYear: 2013, Condition: "like new", Type: "coupe", Is4WD: ptr(false)},
		{Price: 80000, Odometer: 5000, ModelYear: 2019, Condition: "new", Type: "truck", Is4WD: ptr(true)},
	}
}

// newTestService builds a service over an in-memory store with fixture data.
func newTestService(t *testing.T, views ViewCache) (*Service, *memory.ListingStore) {
	t.Helper()

	mem := memory.NewListingStore("fixture")
	require.NoError(t, mem.InsertBulk(context.Background(), fixtureListings()))

	return NewService(recordstore.NewCache(mem, nil), views, nil), mem
}

func fullParams() domain.FilterParams {
	return domain.FilterParams{
		YearMin:   2005,
		YearMax:   2019,
		PriceMin:  5000,
		PriceMax:  80000,
		Condition: domain.ConditionAll,
	}
}
