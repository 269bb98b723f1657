package metrics

import "vehicle-market-lab/internal/domain"

// ComputeKPI calculates the headline scalars of a listing subset.
// Statistics that are undefined for the subset are left nil.
func ComputeKPI(listings []*domain.Listing) domain.KPISummary {
	kpi := domain.KPISummary{Count: len(listings)}
	if len(listings) == 0 {
		return kpi
	}

	prices := make([]float64, len(listings))
	odometers := make([]float64, len(listings))
	for i, l := range listings {
		prices[i] = l.Price
		odometers[i] = l.Odometer
	}

	if m, ok := Median(prices); ok {
		kpi.MedianPrice = &m
	}
	if m, ok := Median(odometers); ok {
		kpi.MedianOdometer = &m
	}
	if r, ok := Pearson(prices, odometers); ok {
		kpi.PriceOdometerCorr = &r
	}

	return kpi
}
