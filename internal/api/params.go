package api

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"vehicle-market-lab/internal/domain"
)

// errBadRequest marks malformed request input.
var errBadRequest = errors.New("bad request")

// Query parameter names.
const (
	paramYearMin     = "year_min"
	paramYearMax     = "year_max"
	paramPriceMin    = "price_min"
	paramPriceMax    = "price_max"
	paramCondition   = "condition"
	paramIncludeRows = "include_rows"
	paramTable       = "table"
)

// parseParams overlays the query values on defaults.
// Missing parameters keep their default.
func parseParams(q url.Values, defaults domain.FilterParams) (domain.FilterParams, error) {
	p := defaults

	if err := parseInt(q, paramYearMin, &p.YearMin); err != nil {
		return p, err
	}
	if err := parseInt(q, paramYearMax, &p.YearMax); err != nil {
		return p, err
	}
	if err := parseFloat(q, paramPriceMin, &p.PriceMin); err != nil {
		return p, err
	}
	if err := parseFloat(q, paramPriceMax, &p.PriceMax); err != nil {
		return p, err
	}
	if q.Has(paramCondition) {
		p.Condition = strings.TrimSpace(q.Get(paramCondition))
	}
	return p, nil
}

func parseInt(q url.Values, key string, dst *int) error {
	if !q.Has(key) {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer", errBadRequest, key)
	}
	*dst = v
	return nil
}

func parseFloat(q url.Values, key string, dst *float64) error {
	if !q.Has(key) {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(q.Get(key)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", errBadRequest, key)
	}
	*dst = v
	return nil
}

func parseBool(q url.Values, key string) (bool, error) {
	if !q.Has(key) {
		return false, nil
	}
	v, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", errBadRequest, key)
	}
	return v, nil
}

// validateParams applies the struct constraints of FilterParams.
func (s *Server) validateParams(p domain.FilterParams) error {
	err := s.validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "ltefield":
			msgs = append(msgs, fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return fmt.Errorf("%w: %s", errBadRequest, strings.Join(msgs, "; "))
}
