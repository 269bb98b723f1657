package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-market-lab/internal/domain"
)

func TestComputeKPI_Empty(t *testing.T) {
	kpi := ComputeKPI(nil)

	assert.Equal(t, 0, kpi.Count)
	assert.Nil(t, kpi.MedianPrice)
	assert.Nil(t, kpi.MedianOdometer)
	assert.Nil(t, kpi.PriceOdometerCorr)
}

func TestComputeKPI_Values(t *testing.T) {
	listings := []*domain.Listing{
		{Price: 30000, Odometer: 10000},
		{Price: 20000, Odometer: 50000},
		{Price: 10000, Odometer: 90000},
		{Price: 5000, Odometer: 150000},
	}

	kpi := ComputeKPI(listings)

	assert.Equal(t, 4, kpi.Count)
	require.NotNil(t, kpi.MedianPrice)
	assert.Equal(t, 15000.0, *kpi.MedianPrice)
	require.NotNil(t, kpi.MedianOdometer)
	assert.Equal(t, 70000.0, *kpi.MedianOdometer)
	require.NotNil(t, kpi.PriceOdometerCorr)
	assert.Less(t, *kpi.PriceOdometerCorr, -0.9)
}

func TestComputeKPI_SingleRowHasNoCorrelation(t *testing.T) {
	kpi := ComputeKPI([]*domain.Listing{{Price: 1000, Odometer: 2000}})

	assert.Equal(t, 1, kpi.Count)
	require.NotNil(t, kpi.MedianPrice)
	assert.Equal(t, 1000.0, *kpi.MedianPrice)
	assert.Nil(t, kpi.PriceOdometerCorr)
}

func TestComputeKPI_IdenticalOdometerHasNoCorrelation(t *testing.T) {
	listings := []*domain.Listing{
		{Price: 1000, Odometer: 42000},
		{Price: 2000, Odometer: 42000},
		{Price: 3000, Odometer: 42000},
	}

	kpi := ComputeKPI(listings)

	assert.Nil(t, kpi.PriceOdometerCorr, "zero variance must be reported as not available")
	require.NotNil(t, kpi.MedianOdometer)
	assert.Equal(t, 42000.0, *kpi.MedianOdometer)
}
