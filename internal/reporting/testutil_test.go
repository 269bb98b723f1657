package reporting

import (
	"time"

	"vehicle-market-lab/internal/domain"
)

func ptr[T any](v T) *T {
	return &v
}

// sampleDashboard returns a small fully populated view.
func sampleDashboard() *domain.Dashboard {
	return &domain.Dashboard{
		ViewID: "3yZe7d",
		Source: domain.SourceIdentity{Kind: domain.SourceCSV, Location: "vehicles.csv", Version: "1-2"},
		Params: domain.FilterParams{
			YearMin: 2010, YearMax: 2018, PriceMin: 1000, PriceMax: 50000, Condition: domain.ConditionAll,
		},
		TotalCount:    120,
		FilteredCount: 40,
		KPI: domain.KPISummary{
			Count:             40,
			MedianPrice:       ptr(15500.0),
			MedianOdometer:    ptr(82000.0),
			PriceOdometerCorr: ptr(-0.5123),
		},
		OverallKPI: domain.KPISummary{Count: 120, MedianPrice: ptr(14000.0)},
		Summary: domain.Summary{
			PriceCap:     ptr(42000.0),
			TrimmedCount: 39,
			MedianByCondition: []domain.ConditionMedian{
				{Condition: "fair", MedianPrice: 6000, Count: 8},
				{Condition: "like new", MedianPrice: 21000, Count: 11},
			},
			Depreciation: []domain.DepreciationPoint{
				{OdometerMid: 10000, Condition: "like new", MedianPrice: 25000, Count: 4,
					Bin: domain.Bin{Index: 0, Low: 0, High: 20000, Mid: 10000}},
			},
			Density: []domain.DensityBin{
				{OdometerMid: 5000, Count: 3, Bin: domain.Bin{Index: 0, Low: 0, High: 10000, Mid: 5000}},
				{OdometerMid: 15000, Count: 6, Bin: domain.Bin{Index: 1, Low: 10000, High: 20000, Mid: 15000}},
			},
			CountByType:  []domain.TypeCount{{Type: "van", Count: 5}, {Type: "sedan", Count: 20}},
			MedianByType: []domain.TypeMedian{{Type: "sedan", MedianPrice: 12000}},
			FourWDShare:  []domain.Type4WDShare{{Type: "SUV", Total: 16, With4WD: 1, Pct: 6.3}},
		},
		ComputedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
