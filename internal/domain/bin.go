package domain

// Bin is a numeric interval over odometer values.
// Index 0 is closed on both ends; every later bin is (Low, High].
type Bin struct {
	Index int     `json:"index"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Mid   float64 `json:"mid"`
}

// Contains reports whether v falls into the bin.
func (b Bin) Contains(v float64) bool {
	if b.Index == 0 {
		return v >= b.Low && v <= b.High
	}
	return v > b.Low && v <= b.High
}

// Odometer bin widths and the upper cap shared by every binned table.
const (
	DepreciationBinWidth = 20_000
	DensityBinWidth      = 10_000
	OdometerCap          = 300_000
)
