package memory

import (
	"context"
	"strconv"
	"sync"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
)

// ListingStore is an in-memory implementation of storage.ListingStore.
// Every insert bumps the version so identities change with the data.
type ListingStore struct {
	mu      sync.RWMutex
	name    string
	data    []*domain.Listing
	version int
}

// NewListingStore creates a new in-memory listing store.
func NewListingStore(name string) *ListingStore {
	return &ListingStore{name: name}
}

// Identity returns the store name and its insert version.
func (s *ListingStore) Identity(_ context.Context) (domain.SourceIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.SourceIdentity{
		Kind:     domain.SourceMemory,
		Location: s.name,
		Version:  strconv.Itoa(s.version),
	}, nil
}

// LoadAll returns copies of all listings in insertion order.
func (s *ListingStore) LoadAll(_ context.Context) ([]*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Listing, len(s.data))
	for i, l := range s.data {
		result[i] = cloneListing(l)
	}
	return result, nil
}

// InsertBulk appends listings atomically. Fails entire batch on invalid input.
func (s *ListingStore) InsertBulk(_ context.Context, listings []*domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	// First pass: validate
	for _, l := range listings {
		if err := storage.ValidateListing(l); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Second pass: insert all
	for _, l := range listings {
		s.data = append(s.data, cloneListing(l))
	}
	s.version++
	return nil
}

// Count returns the number of stored listings.
func (s *ListingStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data), nil
}

func cloneListing(l *domain.Listing) *domain.Listing {
	copy := *l
	if l.Is4WD != nil {
		v := *l.Is4WD
		copy.Is4WD = &v
	}
	return &copy
}

var _ storage.ListingStore = (*ListingStore)(nil)
