package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-market-lab/internal/domain"
)

func listingsOfType(typ string, n int, with4WD int) []*domain.Listing {
	out := make([]*domain.Listing, n)
	for i := 0; i < n; i++ {
		out[i] = &domain.Listing{Type: typ, Price: float64(1000 * (i + 1)), Is4WD: ptr(i < with4WD)}
	}
	return out
}

func TestFourWDShare_TenSUVsThreeWith4WD(t *testing.T) {
	listings := listingsOfType("suv", 10, 3)

	rows := FourWDShare(listings, TopTypes)

	require.Len(t, rows, 1)
	assert.Equal(t, "suv", rows[0].Type)
	assert.Equal(t, 30.0, rows[0].Pct)
	assert.Equal(t, 10, rows[0].Total)
	assert.Equal(t, 3, rows[0].With4WD)
}

func TestFourWDShare_NullFlagsExcludedFromDenominator(t *testing.T) {
	listings := listingsOfType("truck", 4, 1)
	listings = append(listings, &domain.Listing{Type: "truck"}, &domain.Listing{Type: "truck"})

	rows := FourWDShare(listings, TopTypes)

	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].Total)
	assert.Equal(t, 25.0, rows[0].Pct)
}

func TestFourWDShare_OnlyTopFiveSortedAscending(t *testing.T) {
	var listings []*domain.Listing
	listings = append(listings, listingsOfType("sedan", 12, 0)...)
	listings = append(listings, listingsOfType("suv", 10, 8)...)
	listings = append(listings, listingsOfType("truck", 9, 9)...)
	listings = append(listings, listingsOfType("pickup", 8, 4)...)
	listings = append(listings, listingsOfType("coupe", 7, 1)...)
	listings = append(listings, listingsOfType("van", 3, 3)...)

	rows := FourWDShare(listings, TopTypes)

	require.Len(t, rows, 5)
	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Type
		if i > 0 {
			assert.LessOrEqual(t, rows[i-1].Pct, r.Pct)
		}
	}
	assert.Equal(t, []string{"sedan", "coupe", "pickup", "suv", "truck"}, got)
	assert.NotContains(t, got, "van")
	assert.Equal(t, 14.3, rows[1].Pct) // 1/7
}

func TestFourWDShare_TypeWithoutKnownFlagsIsOmitted(t *testing.T) {
	listings := []*domain.Listing{{Type: "bus"}, {Type: "bus"}}

	rows := FourWDShare(listings, TopTypes)

	assert.Empty(t, rows)
}

func TestTopTypesByCount_TiesBrokenByName(t *testing.T) {
	var listings []*domain.Listing
	for _, typ := range []string{"van", "bus", "suv", "coupe", "sedan", "truck"} {
		listings = append(listings, listingsOfType(typ, 2, 0)...)
	}

	top := TopTypesByCount(listings, 5)

	assert.Equal(t, []string{"bus", "coupe", "sedan", "suv", "truck"}, top)
}

func TestCountByType_Ascending(t *testing.T) {
	var listings []*domain.Listing
	listings = append(listings, listingsOfType("sedan", 3, 0)...)
	listings = append(listings, listingsOfType("suv", 1, 0)...)
	listings = append(listings, listingsOfType("truck", 2, 0)...)

	rows := CountByType(listings)

	assert.Equal(t, []domain.TypeCount{
		{Type: "suv", Count: 1},
		{Type: "truck", Count: 2},
		{Type: "sedan", Count: 3},
	}, rows)
}

func TestMedianByType_Ascending(t *testing.T) {
	listings := []*domain.Listing{
		{Type: "truck", Price: 40000},
		{Type: "truck", Price: 30000},
		{Type: "sedan", Price: 9000},
		{Type: "suv", Price: 21000},
	}

	rows := MedianByType(listings)

	assert.Equal(t, []domain.TypeMedian{
		{Type: "sedan", MedianPrice: 9000},
		{Type: "suv", MedianPrice: 21000},
		{Type: "truck", MedianPrice: 35000},
	}, rows)
}
