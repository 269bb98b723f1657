package domain

import "time"

// Dashboard is the full result of one filter change.
type Dashboard struct {
	ViewID        string         `json:"view_id"`
	Source        SourceIdentity `json:"source"`
	Params        FilterParams   `json:"params"`
	TotalCount    int            `json:"total_count"`
	FilteredCount int            `json:"filtered_count"`
	KPI           KPISummary     `json:"kpi"`
	OverallKPI    KPISummary     `json:"overall_kpi"`
	Summary       Summary        `json:"summary"`
	ComputedAt    time.Time      `json:"computed_at"`

	// Row-level subsets are only attached on request.
	Filtered      []*Listing `json:"filtered,omitempty"`
	Trimmed       []*Listing `json:"trimmed,omitempty"`
	RowsTruncated bool       `json:"rows_truncated,omitempty"`
}

// FilterOptions describes the filter controls available for a dataset.
type FilterOptions struct {
	Source     SourceIdentity    `json:"source"`
	Bounds     Bounds            `json:"bounds"`
	Conditions []string          `json:"conditions"`
	Types      []string          `json:"types"`
	Defaults   FilterParams      `json:"defaults"`
	TotalCount int               `json:"total_count"`
	Palette    map[string]string `json:"palette"` // condition -> colour
}
