package aggregation

import (
	"sort"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/metrics"
)

// MedianByCondition groups listings by condition and returns the median price
// of each group, sorted ASC by median (ties by condition name).
func MedianByCondition(listings []*domain.Listing) []domain.ConditionMedian {
	groups := make(map[string][]float64)
	for _, l := range listings {
		groups[l.Condition] = append(groups[l.Condition], l.Price)
	}

	rows := make([]domain.ConditionMedian, 0, len(groups))
	for condition, prices := range groups {
		median, _ := metrics.Median(prices)
		rows = append(rows, domain.ConditionMedian{
			Condition:   condition,
			MedianPrice: median,
			Count:       len(prices),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MedianPrice != rows[j].MedianPrice {
			return rows[i].MedianPrice < rows[j].MedianPrice
		}
		return rows[i].Condition < rows[j].Condition
	})
	return rows
}
