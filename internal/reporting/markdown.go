package reporting

import (
	"fmt"
	"strings"
	"time"

	"vehicle-market-lab/internal/domain"
)

// RenderMarkdown renders a dashboard view as Markdown string.
func RenderMarkdown(d *domain.Dashboard) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Vehicle Market Report\n\n")
	sb.WriteString(fmt.Sprintf("Computed: %s\n\n", d.ComputedAt.UTC().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Source: `%s`\n\n", d.Source.String()))
	sb.WriteString(fmt.Sprintf("View: `%s`\n\n", d.ViewID))

	// Filters
	condition := d.Params.Condition
	if d.Params.AllConditions() {
		condition = domain.ConditionAll
	}
	sb.WriteString("## Filters\n\n")
	sb.WriteString("| Filter | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Model year | %d to %d |\n", d.Params.YearMin, d.Params.YearMax))
	sb.WriteString(fmt.Sprintf("| Price | %.2f to %.2f |\n", d.Params.PriceMin, d.Params.PriceMax))
	sb.WriteString(fmt.Sprintf("| Condition | %s |\n", condition))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Showing %d of %d vehicles.\n\n", d.FilteredCount, d.TotalCount))

	// KPIs
	sb.WriteString("## KPIs\n\n")
	sb.WriteString("| Metric | Filtered | All listings |\n")
	sb.WriteString("|--------|----------|--------------|\n")
	sb.WriteString(fmt.Sprintf("| Listings | %d | %d |\n", d.KPI.Count, d.OverallKPI.Count))
	sb.WriteString(fmt.Sprintf("| Median price | %s | %s |\n",
		formatOptional("%.2f", d.KPI.MedianPrice), formatOptional("%.2f", d.OverallKPI.MedianPrice)))
	sb.WriteString(fmt.Sprintf("| Median odometer | %s | %s |\n",
		formatOptional("%.0f", d.KPI.MedianOdometer), formatOptional("%.0f", d.OverallKPI.MedianOdometer)))
	sb.WriteString(fmt.Sprintf("| Price/odometer correlation | %s | %s |\n",
		formatOptional("%.3f", d.KPI.PriceOdometerCorr), formatOptional("%.3f", d.OverallKPI.PriceOdometerCorr)))
	sb.WriteString("\n")

	s := d.Summary
	sb.WriteString(fmt.Sprintf("Price cap (P97): %s, %d listings kept.\n\n", formatOptional("%.2f", s.PriceCap), s.TrimmedCount))

	// Median price by condition
	sb.WriteString("## Median Price by Condition\n\n")
	if len(s.MedianByCondition) > 0 {
		sb.WriteString("| Condition | Median Price | Listings |\n")
		sb.WriteString("|-----------|--------------|----------|\n")
		for _, r := range s.MedianByCondition {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %d |\n", r.Condition, r.MedianPrice, r.Count))
		}
	} else {
		sb.WriteString("No listings.\n")
	}
	sb.WriteString("\n")

	// Depreciation
	sb.WriteString(fmt.Sprintf("## Depreciation (%d mile bins)\n\n", domain.DepreciationBinWidth))
	if len(s.Depreciation) > 0 {
		sb.WriteString("| Odometer Mid | Condition | Median Price | Listings |\n")
		sb.WriteString("|--------------|-----------|--------------|----------|\n")
		for _, r := range s.Depreciation {
			sb.WriteString(fmt.Sprintf("| %.0f | %s | %.2f | %d |\n", r.OdometerMid, r.Condition, r.MedianPrice, r.Count))
		}
	} else {
		sb.WriteString("No listings.\n")
	}
	sb.WriteString("\n")

	// Density
	sb.WriteString(fmt.Sprintf("## Odometer Density (%d mile bins)\n\n", domain.DensityBinWidth))
	if len(s.Density) > 0 {
		sb.WriteString("| Odometer Range | Mid | Listings |\n")
		sb.WriteString("|----------------|-----|----------|\n")
		for _, r := range s.Density {
			sb.WriteString(fmt.Sprintf("| %s | %.0f | %d |\n", formatBin(r.Bin), r.OdometerMid, r.Count))
		}
	} else {
		sb.WriteString("No listings.\n")
	}
	sb.WriteString("\n")

	// Inventory
	sb.WriteString("## Listings by Type\n\n")
	if len(s.CountByType) > 0 {
		sb.WriteString("| Type | Listings |\n")
		sb.WriteString("|------|----------|\n")
		for _, r := range s.CountByType {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", r.Type, r.Count))
		}
	} else {
		sb.WriteString("No listings.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Median Price by Type\n\n")
	if len(s.MedianByType) > 0 {
		sb.WriteString("| Type | Median Price |\n")
		sb.WriteString("|------|--------------|\n")
		for _, r := range s.MedianByType {
			sb.WriteString(fmt.Sprintf("| %s | %.2f |\n", r.Type, r.MedianPrice))
		}
	} else {
		sb.WriteString("No listings.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## 4WD Share (Top Types)\n\n")
	if len(s.FourWDShare) > 0 {
		sb.WriteString("| Type | 4WD | Known | Share % |\n")
		sb.WriteString("|------|-----|-------|---------|\n")
		for _, r := range s.FourWDShare {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f |\n", r.Type, r.With4WD, r.Total, r.Pct))
		}
	} else {
		sb.WriteString("No listings.\n")
	}

	return sb.String()
}

// formatBin renders a bin in interval notation.
func formatBin(b domain.Bin) string {
	if b.Index == 0 {
		return fmt.Sprintf("[%.0f, %.0f]", b.Low, b.High)
	}
	return fmt.Sprintf("(%.0f, %.0f]", b.Low, b.High)
}
