package aggregation

import (
	"sort"

	"vehicle-market-lab/internal/binning"
	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/metrics"
)

// maxOdometer returns the largest odometer reading, or false for no listings.
func maxOdometer(listings []*domain.Listing) (float64, bool) {
	if len(listings) == 0 {
		return 0, false
	}
	m := listings[0].Odometer
	for _, l := range listings[1:] {
		if l.Odometer > m {
			m = l.Odometer
		}
	}
	return m, true
}

// odometerBinner builds the capped binner for listings at the given width.
func odometerBinner(listings []*domain.Listing, width float64) (*binning.Binner, bool) {
	m, ok := maxOdometer(listings)
	if !ok {
		return nil, false
	}
	return binning.ForOdometers(width, m), true
}

// Depreciation groups listings by (odometer bin, condition) and returns the
// median price of each non-empty group at the bin midpoint.
// Bins are DepreciationBinWidth wide over [0, min(max odometer, OdometerCap)];
// the last bin closes at the cap. Listings above OdometerCap are left out.
// Rows are ordered by bin, then condition.
func Depreciation(listings []*domain.Listing) []domain.DepreciationPoint {
	binner, ok := odometerBinner(listings, domain.DepreciationBinWidth)
	if !ok {
		return []domain.DepreciationPoint{}
	}

	type key struct {
		bin       int
		condition string
	}
	groups := make(map[key][]float64)
	bins := make(map[int]domain.Bin)

	for _, l := range listings {
		bin, ok := binner.Assign(l.Odometer)
		if !ok {
			continue
		}
		k := key{bin.Index, l.Condition}
		groups[k] = append(groups[k], l.Price)
		bins[bin.Index] = bin
	}

	rows := make([]domain.DepreciationPoint, 0, len(groups))
	for k, prices := range groups {
		median, _ := metrics.Median(prices)
		bin := bins[k.bin]
		rows = append(rows, domain.DepreciationPoint{
			OdometerMid: bin.Mid,
			Condition:   k.condition,
			MedianPrice: median,
			Count:       len(prices),
			Bin:         bin,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Bin.Index != rows[j].Bin.Index {
			return rows[i].Bin.Index < rows[j].Bin.Index
		}
		return rows[i].Condition < rows[j].Condition
	})
	return rows
}

// Density counts listings per DensityBinWidth odometer bin over the same
// capped range as Depreciation. Empty bins are omitted; rows are ordered by bin.
func Density(listings []*domain.Listing) []domain.DensityBin {
	binner, ok := odometerBinner(listings, domain.DensityBinWidth)
	if !ok {
		return []domain.DensityBin{}
	}

	counts := make([]int, binner.Len())
	for _, l := range listings {
		if bin, ok := binner.Assign(l.Odometer); ok {
			counts[bin.Index]++
		}
	}

	rows := make([]domain.DensityBin, 0, len(counts))
	for _, bin := range binner.Bins() {
		if counts[bin.Index] == 0 {
			continue
		}
		rows = append(rows, domain.DensityBin{
			OdometerMid: bin.Mid,
			Count:       counts[bin.Index],
			Bin:         bin,
		})
	}
	return rows
}
