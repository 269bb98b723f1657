package reporting

import (
	"fmt"
	"strings"
)

// Table names one exportable summary table.
type Table string

const (
	TableKPI               Table = "kpi"
	TableMedianByCondition Table = "median_by_condition"
	TableDepreciation      Table = "depreciation"
	TableDensity           Table = "density"
	TableCountByType       Table = "count_by_type"
	TableMedianByType      Table = "median_by_type"
	TableFourWDShare       Table = "four_wd_share"
)

// Tables lists every exportable table in report order.
func Tables() []Table {
	return []Table{
		TableKPI,
		TableMedianByCondition,
		TableDepreciation,
		TableDensity,
		TableCountByType,
		TableMedianByType,
		TableFourWDShare,
	}
}

// ParseTable resolves a table name, case-insensitively.
func ParseTable(name string) (Table, error) {
	t := Table(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Tables() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown table %q", name)
}

// notAvailable is printed for scalars that are undefined for the subset.
const notAvailable = "n/a"

// formatOptional renders v with format, or notAvailable when v is nil.
func formatOptional(format string, v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf(format, *v)
}
