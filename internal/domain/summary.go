package domain

// ConditionMedian is one row of the per-condition median price table.
type ConditionMedian struct {
	Condition   string  `json:"condition"`
	MedianPrice float64 `json:"median_price"`
	Count       int     `json:"count"`
}

// DepreciationPoint is the median price of one (odometer bin, condition) group.
type DepreciationPoint struct {
	OdometerMid float64 `json:"odometer_mid"`
	Condition   string  `json:"condition"`
	MedianPrice float64 `json:"median_price"`
	Count       int     `json:"count"`
	Bin         Bin     `json:"bin"`
}

// DensityBin is the listing count of one narrow odometer bin.
type DensityBin struct {
	OdometerMid float64 `json:"odometer_mid"`
	Count       int     `json:"count"`
	Bin         Bin     `json:"bin"`
}

// TypeCount is the number of listings of one vehicle type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TypeMedian is the median price of one vehicle type.
type TypeMedian struct {
	Type        string  `json:"type"`
	MedianPrice float64 `json:"median_price"`
}

// Type4WDShare is the share of four-wheel-drive listings within one type.
type Type4WDShare struct {
	Type    string  `json:"type"`
	Total   int     `json:"total"`    // listings with a known 4WD flag
	With4WD int     `json:"with_4wd"` // listings flagged 4WD
	Pct     float64 `json:"pct_4wd"`  // rounded to one decimal place
}

// Summary holds every summary table computed from one filtered subset.
// Tables are never nil; an empty subset yields empty tables.
type Summary struct {
	PriceCap          *float64            `json:"price_cap"` // P97 of filtered prices, nil when empty
	TrimmedCount      int                 `json:"trimmed_count"`
	MedianByCondition []ConditionMedian   `json:"median_by_condition"`
	Depreciation      []DepreciationPoint `json:"depreciation"`
	Density           []DensityBin        `json:"density"`
	CountByType       []TypeCount         `json:"count_by_type"`
	MedianByType      []TypeMedian        `json:"median_by_type"`
	FourWDShare       []Type4WDShare      `json:"four_wd_share"`
}
