package memory

import (
	"context"
	"errors"
	"testing"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
)

func TestListingStore_InsertAndLoad(t *testing.T) {
	store := NewListingStore("fixtures")
	ctx := context.Background()

	yes := true
	listings := []*domain.Listing{
		{Price: 12000, Odometer: 80000, ModelYear: 2012, Condition: "good", Type: "sedan"},
		{Price: 28000, Odometer: 20000, ModelYear: 2019, Condition: "excellent", Type: "suv", Is4WD: &yes},
	}

	if err := store.InsertBulk(ctx, listings); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}
	if got[0].Price != 12000 || got[1].Type != "suv" {
		t.Errorf("order not preserved: %+v, %+v", got[0], got[1])
	}
	if !got[1].Has4WD() {
		t.Error("expected 4WD flag to round-trip")
	}
}

func TestListingStore_ReturnsCopies(t *testing.T) {
	store := NewListingStore("fixtures")
	ctx := context.Background()

	yes := true
	in := &domain.Listing{Price: 1, Condition: "good", Type: "van", Is4WD: &yes}
	if err := store.InsertBulk(ctx, []*domain.Listing{in}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}
	in.Price = 999
	*in.Is4WD = false

	got, _ := store.LoadAll(ctx)
	if got[0].Price != 1 || !got[0].Has4WD() {
		t.Errorf("store shares memory with caller: %+v", got[0])
	}
}

func TestListingStore_InvalidBatchRejected(t *testing.T) {
	store := NewListingStore("fixtures")
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.Listing{
		{Price: 100, Condition: "good", Type: "sedan"},
		{Price: -1, Condition: "good", Type: "sedan"},
	})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	n, _ := store.Count(ctx)
	if n != 0 {
		t.Errorf("expected no partial insert, got %d rows", n)
	}
}

func TestListingStore_IdentityChangesOnInsert(t *testing.T) {
	store := NewListingStore("fixtures")
	ctx := context.Background()

	before, _ := store.Identity(ctx)
	_ = store.InsertBulk(ctx, []*domain.Listing{{Price: 1, Condition: "good", Type: "van"}})
	after, _ := store.Identity(ctx)

	if before == after {
		t.Errorf("identity did not change after insert: %v", after)
	}
	if after.Kind != domain.SourceMemory || after.Location != "fixtures" {
		t.Errorf("unexpected identity %v", after)
	}
}
