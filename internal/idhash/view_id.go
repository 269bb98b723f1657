package idhash

import (
	"crypto/sha256"
	"fmt"
	"strconv"

	"github.com/mr-tron/base58"

	"vehicle-market-lab/internal/domain"
)

// ViewID computes a deterministic dashboard view id using SHA256.
// Formula: SHA256(source|year_min|year_max|price_min|price_max|condition)
// Returns the base58-encoded hash (43 or 44 characters).
//
// An empty condition hashes as domain.ConditionAll so both spellings share a view.
func ViewID(source domain.SourceIdentity, params domain.FilterParams) string {
	condition := params.Condition
	if params.AllConditions() {
		condition = domain.ConditionAll
	}

	data := fmt.Sprintf("%s|%d|%d|%s|%s|%s",
		source.String(),
		params.YearMin,
		params.YearMax,
		formatFloat(params.PriceMin),
		formatFloat(params.PriceMax),
		condition,
	)

	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:])
}

// formatFloat renders the shortest representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
