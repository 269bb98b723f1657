// Package recordstore holds the loaded listing table and the categories and
// extremes discovered from it.
package recordstore

import (
	"errors"
	"fmt"
	"sort"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
)

// ErrEmptyDataset is returned when a source holds no listings.
var ErrEmptyDataset = errors.New("empty dataset")

// Store is an immutable listing table.
// It is safe for concurrent reads.
type Store struct {
	source     domain.SourceIdentity
	listings   []*domain.Listing
	conditions []string
	types      []string
	bounds     domain.Bounds
}

// New validates listings and builds a Store over them.
// The slice is copied; the listings themselves must not be modified afterwards.
func New(source domain.SourceIdentity, listings []*domain.Listing) (*Store, error) {
	if len(listings) == 0 {
		return nil, ErrEmptyDataset
	}

	rows := make([]*domain.Listing, len(listings))
	conditions := make(map[string]struct{})
	types := make(map[string]struct{})

	b := domain.Bounds{
		YearMin:     listings[0].ModelYear,
		YearMax:     listings[0].ModelYear,
		PriceMin:    listings[0].Price,
		PriceMax:    listings[0].Price,
		OdometerMin: listings[0].Odometer,
		OdometerMax: listings[0].Odometer,
	}

	for i, l := range listings {
		if err := storage.ValidateListing(l); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows[i] = l
		conditions[l.Condition] = struct{}{}
		types[l.Type] = struct{}{}

		b.YearMin = min(b.YearMin, l.ModelYear)
		b.YearMax = max(b.YearMax, l.ModelYear)
		b.PriceMin = min(b.PriceMin, l.Price)
		b.PriceMax = max(b.PriceMax, l.Price)
		b.OdometerMin = min(b.OdometerMin, l.Odometer)
		b.OdometerMax = max(b.OdometerMax, l.Odometer)
	}

	return &Store{
		source:     source,
		listings:   rows,
		conditions: sortedKeys(conditions),
		types:      sortedKeys(types),
		bounds:     b,
	}, nil
}

// Source returns the identity the store was loaded from.
func (s *Store) Source() domain.SourceIdentity { return s.source }

// Listings returns the table in load order. Callers must not modify it.
func (s *Store) Listings() []*domain.Listing { return s.listings }

// Len returns the number of listings.
func (s *Store) Len() int { return len(s.listings) }

// Conditions returns the distinct conditions, sorted ASC.
func (s *Store) Conditions() []string { return s.conditions }

// Types returns the distinct vehicle types, sorted ASC.
func (s *Store) Types() []string { return s.types }

// Bounds returns the extremes of year, price and odometer.
func (s *Store) Bounds() domain.Bounds { return s.bounds }

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
