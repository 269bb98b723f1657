package aggregation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-market-lab/internal/domain"
)

func TestDepreciation_GroupsByBinAndCondition(t *testing.T) {
	listings := []*domain.Listing{
		{Price: 30000, Odometer: 0, Condition: "excellent"},
		{Price: 28000, Odometer: 20000, Condition: "excellent"},
		{Price: 25000, Odometer: 15000, Condition: "good"},
		{Price: 20000, Odometer: 20001, Condition: "excellent"},
		{Price: 12000, Odometer: 60000, Condition: "good"},
	}

	rows := Depreciation(listings)

	// cap = 60000 → bins [0,20k], (20k,40k], (40k,60k]
	require.Len(t, rows, 4)

	assert.Equal(t, 10000.0, rows[0].OdometerMid)
	assert.Equal(t, "excellent", rows[0].Condition)
	assert.Equal(t, 29000.0, rows[0].MedianPrice)
	assert.Equal(t, 2, rows[0].Count)

	assert.Equal(t, 10000.0, rows[1].OdometerMid)
	assert.Equal(t, "good", rows[1].Condition)
	assert.Equal(t, 25000.0, rows[1].MedianPrice)

	assert.Equal(t, 30000.0, rows[2].OdometerMid)
	assert.Equal(t, "excellent", rows[2].Condition)
	assert.Equal(t, 20000.0, rows[2].MedianPrice)

	assert.Equal(t, 50000.0, rows[3].OdometerMid)
	assert.Equal(t, "good", rows[3].Condition)
	assert.Equal(t, 12000.0, rows[3].MedianPrice)
}

func TestDepreciation_EveryCoveredRowInExactlyOneGroup(t *testing.T) {
	trimmed, _, _ := Trim(syntheticListings(600), TrimPercentile)
	m, _ := maxOdometer(trimmed)
	limit := math.Min(m, domain.OdometerCap)

	rows := Depreciation(trimmed)

	covered := 0
	for _, l := range trimmed {
		if l.Odometer <= limit {
			covered++
		}
	}

	total := 0
	seen := make(map[[2]interface{}]bool)
	for _, r := range rows {
		key := [2]interface{}{r.Bin.Index, r.Condition}
		assert.False(t, seen[key], "duplicate group %v", key)
		seen[key] = true
		assert.Greater(t, r.Count, 0, "empty groups must be omitted")
		assert.Equal(t, (r.Bin.Low+r.Bin.High)/2, r.OdometerMid)
		total += r.Count
	}
	assert.Equal(t, covered, total)
}

func TestDepreciation_CapsAt300k(t *testing.T) {
	listings := []*domain.Listing{
		{Price: 1000, Odometer: 500000, Condition: "fair"},
		{Price: 2000, Odometer: 290000, Condition: "fair"},
	}

	rows := Depreciation(listings)

	require.Len(t, rows, 1)
	assert.Equal(t, 290000.0, rows[0].OdometerMid)
	assert.Equal(t, 2000.0, rows[0].MedianPrice)
}

func TestDepreciation_Empty(t *testing.T) {
	rows := Depreciation(nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDensity_CountsPerBin(t *testing.T) {
	listings := []*domain.Listing{
		{Odometer: 0},
		{Odometer: 10000},
		{Odometer: 10001},
		{Odometer: 29999},
		{Odometer: 40000},
	}

	rows := Density(listings)

	// cap = 40000 → 4 bins, bin (20k,30k] has one row, (30k,40k] one, (10k,20k] one, [0,10k] two
	require.Len(t, rows, 4)
	assert.Equal(t, domain.DensityBin{OdometerMid: 5000, Count: 2, Bin: rows[0].Bin}, rows[0])
	assert.Equal(t, 15000.0, rows[1].OdometerMid)
	assert.Equal(t, 1, rows[1].Count)
	assert.Equal(t, 25000.0, rows[2].OdometerMid)
	assert.Equal(t, 35000.0, rows[3].OdometerMid)
}

func TestDensity_OmitsEmptyBins(t *testing.T) {
	listings := []*domain.Listing{{Odometer: 1000}, {Odometer: 95000}}

	rows := Density(listings)

	// cap = 95000 → last bin (90k,95k]
	require.Len(t, rows, 2)
	assert.Equal(t, 5000.0, rows[0].OdometerMid)
	assert.Equal(t, 92500.0, rows[1].OdometerMid)
	assert.Equal(t, 95000.0, rows[1].Bin.High)
}

func TestDepreciation_RowAtNonMultipleCapIsAssigned(t *testing.T) {
	listings := []*domain.Listing{
		{Price: 20000, Odometer: 10000, Condition: "good"},
		{Price: 9000, Odometer: 35000, Condition: "good"},
	}

	rows := Depreciation(listings)

	// cap = 35000 → bins [0,20k], (20k,35k]
	require.Len(t, rows, 2)
	assert.Equal(t, 10000.0, rows[0].OdometerMid)
	assert.Equal(t, 27500.0, rows[1].OdometerMid)
	assert.Equal(t, 9000.0, rows[1].MedianPrice)
	assert.Equal(t, 35000.0, rows[1].Bin.High)
}

func TestDepreciationAndDensity_CapBelowWidth(t *testing.T) {
	listings := make([]*domain.Listing, 10)
	for i := range listings {
		listings[i] = &domain.Listing{Price: float64(5000 + i*100), Odometer: float64(15000 + i*100), Condition: "fair"}
	}

	depre := Depreciation(listings)
	require.Len(t, depre, 1)
	assert.Equal(t, 10, depre[0].Count)
	assert.Equal(t, 15900.0, depre[0].Bin.High)

	density := Density(listings)
	total := 0
	for _, r := range density {
		total += r.Count
	}
	assert.Equal(t, 10, total)
	require.Len(t, density, 1)
	assert.Equal(t, 15900.0, density[0].Bin.High)
}

func TestDensity_AllZeroOdometers(t *testing.T) {
	rows := Density([]*domain.Listing{{Odometer: 0}, {Odometer: 0}})

	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, 0.0, rows[0].OdometerMid)
}

func TestDensity_Empty(t *testing.T) {
	assert.Empty(t, Density(nil))
}
