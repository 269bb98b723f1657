package domain

// Listing is one used-vehicle advertisement.
// Listings are immutable once loaded into the record store.
type Listing struct {
	Price     float64 `json:"price"`      // asking price, non-negative
	Odometer  float64 `json:"odometer"`   // miles, non-negative
	ModelYear int     `json:"model_year"` // calendar year of the model
	Condition string  `json:"condition"`  // quality grade (excellent, good, fair, ...)
	Type      string  `json:"type"`       // body type (sedan, suv, truck, ...)
	Is4WD     *bool   `json:"is_4wd"`     // nullable; nil means unknown
}

// Has4WD reports whether the listing is known to have four-wheel drive.
// Unknown values count as false.
func (l *Listing) Has4WD() bool {
	return l.Is4WD != nil && *l.Is4WD
}

// Bounds holds the observed extremes of the numeric listing fields.
type Bounds struct {
	YearMin     int     `json:"year_min"`
	YearMax     int     `json:"year_max"`
	PriceMin    float64 `json:"price_min"`
	PriceMax    float64 `json:"price_max"`
	OdometerMin float64 `json:"odometer_min"`
	OdometerMax float64 `json:"odometer_max"`
}

// Column names of the listing schema.
const (
	ColumnPrice     = "price"
	ColumnOdometer  = "odometer"
	ColumnModelYear = "model_year"
	ColumnCondition = "condition"
	ColumnType      = "type"
	ColumnIs4WD     = "is_4wd"
)

// Columns lists every column a listing source must provide.
var Columns = []string{
	ColumnPrice,
	ColumnOdometer,
	ColumnModelYear,
	ColumnCondition,
	ColumnType,
	ColumnIs4WD,
}
