package aggregation

import (
	"sort"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/metrics"
)

// TopTypes is the number of most listed types in the 4WD share table.
const TopTypes = 5

// CountByType counts listings per vehicle type, sorted ASC by count (ties by type).
func CountByType(listings []*domain.Listing) []domain.TypeCount {
	counts := make(map[string]int)
	for _, l := range listings {
		counts[l.Type]++
	}

	rows := make([]domain.TypeCount, 0, len(counts))
	for t, c := range counts {
		rows = append(rows, domain.TypeCount{Type: t, Count: c})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count < rows[j].Count
		}
		return rows[i].Type < rows[j].Type
	})
	return rows
}

// MedianByType returns the median price per vehicle type, sorted ASC by median (ties by type).
func MedianByType(listings []*domain.Listing) []domain.TypeMedian {
	groups := make(map[string][]float64)
	for _, l := range listings {
		groups[l.Type] = append(groups[l.Type], l.Price)
	}

	rows := make([]domain.TypeMedian, 0, len(groups))
	for t, prices := range groups {
		median, _ := metrics.Median(prices)
		rows = append(rows, domain.TypeMedian{Type: t, MedianPrice: median})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MedianPrice != rows[j].MedianPrice {
			return rows[i].MedianPrice < rows[j].MedianPrice
		}
		return rows[i].Type < rows[j].Type
	})
	return rows
}

// TopTypesByCount returns the n most listed types, highest count first.
// Ties are broken by type name so the selection is deterministic.
func TopTypesByCount(listings []*domain.Listing, n int) []string {
	counts := CountByType(listings)
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Type < counts[j].Type
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	types := make([]string, len(counts))
	for i, c := range counts {
		types[i] = c.Type
	}
	return types
}

// FourWDShare computes the share of 4WD listings for the top n types by listing count.
// The denominator is the number of listings with a known 4WD flag; types
// without any known flag are omitted. Rows are sorted ASC by percentage (ties by type).
func FourWDShare(listings []*domain.Listing, n int) []domain.Type4WDShare {
	top := TopTypesByCount(listings, n)
	selected := make(map[string]*domain.Type4WDShare, len(top))
	for _, t := range top {
		selected[t] = &domain.Type4WDShare{Type: t}
	}

	for _, l := range listings {
		share, ok := selected[l.Type]
		if !ok || l.Is4WD == nil {
			continue
		}
		share.Total++
		if *l.Is4WD {
			share.With4WD++
		}
	}

	rows := make([]domain.Type4WDShare, 0, len(selected))
	for _, t := range top {
		share := selected[t]
		pct, ok := metrics.Percentage(share.With4WD, share.Total)
		if !ok {
			continue
		}
		share.Pct = pct
		rows = append(rows, *share)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Pct != rows[j].Pct {
			return rows[i].Pct < rows[j].Pct
		}
		return rows[i].Type < rows[j].Type
	})
	return rows
}
