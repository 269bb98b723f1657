package storage

import (
	"context"

	"vehicle-market-lab/internal/domain"
)

// ListingSource provides read access to a listing dataset.
type ListingSource interface {
	// Identity returns the current identity of the dataset.
	// Returns ErrSourceMissing if the dataset does not exist.
	Identity(ctx context.Context) (domain.SourceIdentity, error)

	// LoadAll reads every listing in storage order.
	// Returns ErrSourceMissing if the dataset does not exist and ErrSchema
	// if required columns are absent or malformed.
	LoadAll(ctx context.Context) ([]*domain.Listing, error)
}

// ListingStore is a ListingSource that also accepts imports.
type ListingStore interface {
	ListingSource

	// InsertBulk appends listings in a single batch. Fails entire batch on invalid input.
	InsertBulk(ctx context.Context, listings []*domain.Listing) error

	// Count returns the number of stored listings.
	Count(ctx context.Context) (int, error)
}
