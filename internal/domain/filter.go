package domain

// ConditionAll selects every condition. Listings may not use it as their condition.
const ConditionAll = "all"

// FilterParams is the user-selected filter over the record store.
// Both ranges are inclusive on each end.
type FilterParams struct {
	YearMin   int     `json:"year_min" validate:"ltefield=YearMax"`
	YearMax   int     `json:"year_max"`
	PriceMin  float64 `json:"price_min" validate:"gte=0,ltefield=PriceMax"`
	PriceMax  float64 `json:"price_max"`
	Condition string  `json:"condition"`
}

// AllConditions reports whether the params select every condition.
func (p FilterParams) AllConditions() bool {
	return p.Condition == "" || p.Condition == ConditionAll
}

// Matches reports whether a listing satisfies all three predicates.
func (p FilterParams) Matches(l *Listing) bool {
	if l.ModelYear < p.YearMin || l.ModelYear > p.YearMax {
		return false
	}
	if l.Price < p.PriceMin || l.Price > p.PriceMax {
		return false
	}
	return p.AllConditions() || l.Condition == p.Condition
}
