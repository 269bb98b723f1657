// Package filter selects the listings matching user filter parameters.
package filter

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"vehicle-market-lab/internal/domain"
)

// Filter errors.
var (
	// ErrInvalidRange is returned when a range minimum exceeds its maximum.
	ErrInvalidRange = errors.New("invalid range: min exceeds max")

	// ErrUnknownCondition is returned when the condition is not in the dataset.
	ErrUnknownCondition = errors.New("unknown condition")
)

// Apply returns every listing that satisfies params.
// Order is preserved; records is not modified. The result is never nil.
func Apply(records []*domain.Listing, params domain.FilterParams) []*domain.Listing {
	result := make([]*domain.Listing, 0, len(records))
	for _, l := range records {
		if params.Matches(l) {
			result = append(result, l)
		}
	}
	return result
}

// DefaultParams selects the whole dataset.
// Price bounds are widened to whole units as slider extremes are.
func DefaultParams(b domain.Bounds) domain.FilterParams {
	return domain.FilterParams{
		YearMin:   b.YearMin,
		YearMax:   b.YearMax,
		PriceMin:  math.Floor(b.PriceMin),
		PriceMax:  math.Ceil(b.PriceMax),
		Condition: domain.ConditionAll,
	}
}

// Clamp limits both ranges to the dataset extremes.
// A range lying entirely outside the extremes is left as is so it still
// selects nothing. An empty condition becomes domain.ConditionAll.
func Clamp(p domain.FilterParams, b domain.Bounds) domain.FilterParams {
	if p.YearMin < b.YearMin && p.YearMax >= b.YearMin {
		p.YearMin = b.YearMin
	}
	if p.YearMax > b.YearMax && p.YearMin <= b.YearMax {
		p.YearMax = b.YearMax
	}

	priceMin := math.Floor(b.PriceMin)
	priceMax := math.Ceil(b.PriceMax)
	if p.PriceMin < priceMin && p.PriceMax >= priceMin {
		p.PriceMin = priceMin
	}
	if p.PriceMax > priceMax && p.PriceMin <= priceMax {
		p.PriceMax = priceMax
	}

	if p.Condition == "" {
		p.Condition = domain.ConditionAll
	}
	return p
}

// Validate checks range ordering and that the condition is ConditionAll
// or one of conditions. conditions must be sorted ASC.
func Validate(p domain.FilterParams, conditions []string) error {
	if p.YearMin > p.YearMax {
		return fmt.Errorf("%w: year %d > %d", ErrInvalidRange, p.YearMin, p.YearMax)
	}
	if !isFinite(p.PriceMin) || !isFinite(p.PriceMax) {
		return fmt.Errorf("%w: price bounds must be finite", ErrInvalidRange)
	}
	if p.PriceMin > p.PriceMax {
		return fmt.Errorf("%w: price %.2f > %.2f", ErrInvalidRange, p.PriceMin, p.PriceMax)
	}
	if p.AllConditions() {
		return nil
	}

	i := sort.SearchStrings(conditions, p.Condition)
	if i >= len(conditions) || conditions[i] != p.Condition {
		return fmt.Errorf("%w: %q", ErrUnknownCondition, p.Condition)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
