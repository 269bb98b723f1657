package aggregation

import (
	"fmt"

	"vehicle-market-lab/internal/domain"
)

// ptr is a helper to create pointers to values.
func ptr[T any](v T) *T {
	return &v
}

// syntheticListings builds a deterministic subset spanning every grouping dimension.
func syntheticListings(n int) []*domain.Listing {
	conditions := []string{"excellent", "good", "fair", "like new"}
	types := []string{"sedan", "suv", "truck", "pickup", "coupe", "van", "wagon"}

	listings := make([]*domain.Listing, n)
	for i := 0; i < n; i++ {
		var is4wd *bool
		if i%5 != 0 {
			is4wd = ptr(i%3 == 0)
		}
		listings[i] = &domain.Listing{
			Price:     float64(2000 + (i*7919)%48000),
			Odometer:  float64((i * 15485863) % 320000),
			ModelYear: 2000 + i%22,
			Condition: conditions[i%len(conditions)],
			Type:      types[(i*i)%len(types)],
			Is4WD:     is4wd,
		}
	}
	return listings
}

func describe(l *domain.Listing) string {
	return fmt.Sprintf("%s/%s/%.0f/%.0f", l.Condition, l.Type, l.Price, l.Odometer)
}
