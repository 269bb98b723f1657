package aggregation

import (
	"sort"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/metrics"
)

// TrimPercentile is the price percentile above which listings are excluded
// from distribution-sensitive tables.
const TrimPercentile = 0.97

// Trim drops listings priced strictly above the p-th price percentile of listings.
// Returns the kept listings in input order and the computed cap.
// An empty input yields an empty result and ok == false.
func Trim(listings []*domain.Listing, p float64) (kept []*domain.Listing, priceCap float64, ok bool) {
	if len(listings) == 0 {
		return []*domain.Listing{}, 0, false
	}

	prices := make([]float64, len(listings))
	for i, l := range listings {
		prices[i] = l.Price
	}
	sort.Float64s(prices)

	priceCap, _ = metrics.Percentile(prices, p)

	kept = make([]*domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Price <= priceCap {
			kept = append(kept, l)
		}
	}
	return kept, priceCap, true
}
