// Package binning splits odometer values into fixed-width intervals.
package binning

import (
	"math"

	"vehicle-market-lab/internal/domain"
)

// Binner assigns values to fixed-width bins over [0, Cap].
// Edges are 0, Width, 2*Width, ... and the last bin closes at Cap, so the
// bins cover [0, Cap] without gaps even when Cap is not a multiple of Width.
type Binner struct {
	Width float64
	Cap   float64
	bins  []domain.Bin
}

// New creates a binner for the given width and cap.
// A non-positive width or a negative cap yields a binner with no bins.
// A zero cap yields the single bin [0, 0].
func New(width, cap float64) *Binner {
	b := &Binner{Width: width, Cap: cap}
	if width <= 0 || cap < 0 || math.IsNaN(cap) || math.IsInf(cap, 0) {
		return b
	}

	n := max(int(math.Ceil(cap/width)), 1)
	b.bins = make([]domain.Bin, n)
	for i := 0; i < n; i++ {
		low := float64(i) * width
		high := math.Min(low+width, cap)
		b.bins[i] = domain.Bin{
			Index: i,
			Low:   low,
			High:  high,
			Mid:   (low + high) / 2,
		}
	}
	return b
}

// ForOdometers creates a binner whose cap is min(maxOdometer, domain.OdometerCap).
func ForOdometers(width, maxOdometer float64) *Binner {
	return New(width, Cap(maxOdometer))
}

// Cap returns the effective upper edge for a maximum odometer reading.
func Cap(maxOdometer float64) float64 {
	return math.Min(maxOdometer, domain.OdometerCap)
}

// Bins returns the bins in ascending order.
func (b *Binner) Bins() []domain.Bin {
	out := make([]domain.Bin, len(b.bins))
	copy(out, b.bins)
	return out
}

// Len returns the number of bins.
func (b *Binner) Len() int {
	return len(b.bins)
}

// Upper returns the highest covered value (Cap), or 0 when there are no bins.
func (b *Binner) Upper() float64 {
	if len(b.bins) == 0 {
		return 0
	}
	return b.bins[len(b.bins)-1].High
}

// Assign returns the bin containing v.
// The first bin includes its lower edge. Values outside [0, Upper()] are not assigned.
func (b *Binner) Assign(v float64) (domain.Bin, bool) {
	if len(b.bins) == 0 || math.IsNaN(v) || v < 0 || v > b.Upper() {
		return domain.Bin{}, false
	}
	if v == 0 {
		return b.bins[0], true
	}

	// (Low, High] intervals: ceil(v/width)-1
	idx := int(math.Ceil(v/b.Width)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(b.bins) {
		idx = len(b.bins) - 1
	}
	return b.bins[idx], true
}
