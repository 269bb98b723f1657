package domain

// KPISummary holds the headline scalars of a filtered subset.
// A nil pointer means the statistic is not available for the subset.
type KPISummary struct {
	Count             int      `json:"count"`
	MedianPrice       *float64 `json:"median_price"`
	MedianOdometer    *float64 `json:"median_odometer"`
	PriceOdometerCorr *float64 `json:"price_odometer_corr"`
}
