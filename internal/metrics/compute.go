package metrics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Percentile uses linear interpolation between closest ranks.
// sorted must be pre-sorted ASC.
// p is percentile (0.97 = 97th percentile).
// Returns false for an empty input.
func Percentile(sorted []float64, p float64) (float64, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}
	if n == 1 {
		return sorted[0], true
	}

	// Index for percentile (0-based, continuous)
	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1], true
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower]), true
}

// Median returns the middle value; even counts average the two middle values.
// values is not modified.
func Median(values []float64) (float64, bool) {
	n := len(values)
	if n == 0 {
		return 0, false
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2], true
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, true
}

// Mean calculates the arithmetic mean.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Pearson calculates the Pearson correlation coefficient of x and y.
// Returns false when the inputs differ in length, have fewer than 2 points,
// or either variable has zero variance.
func Pearson(x, y []float64) (float64, bool) {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0, false
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	if sxx == 0 || syy == 0 {
		return 0, false
	}

	r := sxy / math.Sqrt(sxx*syy)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	// Clamp rounding drift
	return math.Max(-1, math.Min(1, r)), true
}

// Percentage returns 100*part/total rounded to one decimal place.
// The division is exact decimal arithmetic and ties round half away from zero,
// so 1/16 (6.25%) becomes 6.3. Returns false when total is zero.
func Percentage(part, total int) (float64, bool) {
	if total == 0 {
		return 0, false
	}
	pct := decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 8).
		Round(1)
	return pct.InexactFloat64(), true
}
