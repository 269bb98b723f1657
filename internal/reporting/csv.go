package reporting

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"vehicle-market-lab/internal/domain"
)

// RenderCSV renders one summary table of a dashboard view as CSV string.
func RenderCSV(table Table, d *domain.Dashboard) (string, error) {
	header, rows, err := tableRows(table, d)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write %s header: %w", table, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write %s rows: %w", table, err)
	}
	return sb.String(), nil
}

func tableRows(table Table, d *domain.Dashboard) ([]string, [][]string, error) {
	s := d.Summary

	switch table {
	case TableKPI:
		return []string{"scope", "count", "median_price", "median_odometer", "price_odometer_corr"},
			[][]string{kpiRow("filtered", d.KPI), kpiRow("all", d.OverallKPI)}, nil

	case TableMedianByCondition:
		rows := make([][]string, 0, len(s.MedianByCondition))
		for _, r := range s.MedianByCondition {
			rows = append(rows, []string{r.Condition, ftoa(r.MedianPrice), strconv.Itoa(r.Count)})
		}
		return []string{"condition", "median_price", "count"}, rows, nil

	case TableDepreciation:
		rows := make([][]string, 0, len(s.Depreciation))
		for _, r := range s.Depreciation {
			rows = append(rows, []string{
				ftoa(r.OdometerMid), r.Condition, ftoa(r.MedianPrice), strconv.Itoa(r.Count),
				ftoa(r.Bin.Low), ftoa(r.Bin.High),
			})
		}
		return []string{"odometer_mid", "condition", "median_price", "count", "bin_low", "bin_high"}, rows, nil

	case TableDensity:
		rows := make([][]string, 0, len(s.Density))
		for _, r := range s.Density {
			rows = append(rows, []string{ftoa(r.OdometerMid), strconv.Itoa(r.Count), ftoa(r.Bin.Low), ftoa(r.Bin.High)})
		}
		return []string{"odometer_mid", "count", "bin_low", "bin_high"}, rows, nil

	case TableCountByType:
		rows := make([][]string, 0, len(s.CountByType))
		for _, r := range s.CountByType {
			rows = append(rows, []string{r.Type, strconv.Itoa(r.Count)})
		}
		return []string{"type", "count"}, rows, nil

	case TableMedianByType:
		rows := make([][]string, 0, len(s.MedianByType))
		for _, r := range s.MedianByType {
			rows = append(rows, []string{r.Type, ftoa(r.MedianPrice)})
		}
		return []string{"type", "median_price"}, rows, nil

	case TableFourWDShare:
		rows := make([][]string, 0, len(s.FourWDShare))
		for _, r := range s.FourWDShare {
			rows = append(rows, []string{r.Type, strconv.Itoa(r.Total), strconv.Itoa(r.With4WD), strconv.FormatFloat(r.Pct, 'f', 1, 64)})
		}
		return []string{"type", "total", "with_4wd", "pct_4wd"}, rows, nil

	default:
		return nil, nil, fmt.Errorf("unknown table %q", table)
	}
}

func kpiRow(scope string, k domain.KPISummary) []string {
	return []string{
		scope,
		strconv.Itoa(k.Count),
		optionalString(k.MedianPrice),
		optionalString(k.MedianOdometer),
		optionalString(k.PriceOdometerCorr),
	}
}

// optionalString leaves undefined scalars empty so CSV readers see a null.
func optionalString(v *float64) string {
	if v == nil {
		return ""
	}
	return ftoa(*v)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
