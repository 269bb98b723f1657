package dashboard

// DefaultColour is used for categories missing from a palette.
const DefaultColour = "#2F6ECE"

// conditionColours is the fixed colour of each known listing condition.
var conditionColours = map[string]string{
	"excellent": "#2F6ECE",
	"good":      "#F1A139",
	"like new":  "#32A852",
	"fair":      "#A83232",
	"new":       "#6B2FCE",
	"salvage":   "#333333",
}

// Palette maps chart categories to colours.
type Palette struct {
	colours  map[string]string
	fallback string
}

// NewPalette creates a palette. An empty fallback selects DefaultColour.
func NewPalette(colours map[string]string, fallback string) Palette {
	if fallback == "" {
		fallback = DefaultColour
	}
	c := make(map[string]string, len(colours))
	for k, v := range colours {
		c[k] = v
	}
	return Palette{colours: c, fallback: fallback}
}

// ConditionPalette returns the palette used for listing conditions.
func ConditionPalette() Palette {
	return NewPalette(conditionColours, DefaultColour)
}

// Colour returns the colour of category, or the fallback for unseen categories.
func (p Palette) Colour(category string) string {
	if c, ok := p.colours[category]; ok {
		return c
	}
	if p.fallback == "" {
		return DefaultColour
	}
	return p.fallback
}

// For resolves the colour of every category.
func (p Palette) For(categories []string) map[string]string {
	out := make(map[string]string, len(categories))
	for _, c := range categories {
		out[c] = p.Colour(c)
	}
	return out
}
