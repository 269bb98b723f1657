// Package aggregation turns a filtered listing subset into the summary tables
// behind the dashboard charts.
package aggregation

import "vehicle-market-lab/internal/domain"

// Result bundles the summary tables with the trimmed subset they were built from.
type Result struct {
	Summary domain.Summary
	Trimmed []*domain.Listing
}

// Run computes every summary table for a filtered subset.
//
// Price distribution tables (median by condition, depreciation, density,
// median by type) use the subset trimmed at TrimPercentile. Listing counts
// and the 4WD share ranking use the untrimmed subset.
func Run(filtered []*domain.Listing) Result {
	trimmed, priceCap, ok := Trim(filtered, TrimPercentile)

	summary := domain.Summary{
		TrimmedCount:      len(trimmed),
		MedianByCondition: MedianByCondition(trimmed),
		Depreciation:      Depreciation(trimmed),
		Density:           Density(trimmed),
		CountByType:       CountByType(filtered),
		MedianByType:      MedianByType(trimmed),
		FourWDShare:       FourWDShare(filtered, TopTypes),
	}
	if ok {
		summary.PriceCap = &priceCap
	}

	return Result{Summary: summary, Trimmed: trimmed}
}
