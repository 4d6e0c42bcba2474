package store

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestCatalogStore_ListNewestFirstWithLimit(t *testing.T) {
	db := newTestDB(t)
	store := NewCatalogStore(db)
	ctx := context.Background()

	names := []string{"bolt", "washer", "nut", "screw", "rivet"}
	for _, n := range names {
		seedProduct(t, db, n, 10)
	}

	rows, err := store.List(ctx, 3)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 products, got %d", len(rows))
	}
	// Newest first: ids descend.
	if rows[0].ID < rows[1].ID || rows[1].ID < rows[2].ID {
		t.Errorf("Expected descending id order, got %d, %d, %d", rows[0].ID, rows[1].ID, rows[2].ID)
	}
	if rows[0].Name != "rivet" {
		t.Errorf("Expected newest product first, got %q", rows[0].Name)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(all) != len(names) {
		t.Errorf("Expected %d products without limit, got %d", len(names), len(all))
	}
}

func TestCatalogStore_DecrementStock(t *testing.T) {
	db := newTestDB(t)
	store := NewCatalogStore(db)
	ctx := context.Background()
	p := seedProduct(t, db, "drill", 10)

	if err := store.DecrementStock(ctx, p.ID, 3, false); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	got, err := store.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got.Quantity != 7 {
		t.Errorf("Expected quantity 7, got %d", got.Quantity)
	}
}

func TestCatalogStore_DecrementStock_Insufficient(t *testing.T) {
	db := newTestDB(t)
	store := NewCatalogStore(db)
	ctx := context.Background()
	p := seedProduct(t, db, "drill", 10)

	err := store.DecrementStock(ctx, p.ID, 11, false)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got: %v", err)
	}

	got, _ := store.Get(ctx, p.ID)
	if got.Quantity != 10 {
		t.Errorf("Expected quantity unchanged at 10, got %d", got.Quantity)
	}
}

func TestCatalogStore_DecrementStock_ExactZero(t *testing.T) {
	db := newTestDB(t)
	store := NewCatalogStore(db)
	ctx := context.Background()
	p := seedProduct(t, db, "drill", 10)

	// Default mode: consuming all remaining stock is an ordinary order.
	if err := store.DecrementStock(ctx, p.ID, 10, false); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	got, _ := store.Get(ctx, p.ID)
	if got.Quantity != 0 {
		t.Errorf("Expected quantity 0, got %d", got.Quantity)
	}
}

func TestCatalogStore_DecrementStock_LegacyZeroDrop(t *testing.T) {
	db := newTestDB(t)
	store := NewCatalogStore(db)
	ctx := context.Background()
	p := seedProduct(t, db, "drill", 10)

	err := store.DecrementStock(ctx, p.ID, 10, true)
	if !errors.Is(err, ErrZeroStockDrop) {
		t.Fatalf("Expected ErrZeroStockDrop, got: %v", err)
	}
	got, _ := store.Get(ctx, p.ID)
	if got.Quantity != 10 {
		t.Errorf("Expected quantity unchanged at 10, got %d", got.Quantity)
	}

	// Leaving one unit behind is still allowed in legacy mode.
	if err := store.DecrementStock(ctx, p.ID, 9, true); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	got, _ = store.Get(ctx, p.ID)
	if got.Quantity != 1 {
		t.Errorf("Expected quantity 1, got %d", got.Quantity)
	}
}

func TestCatalogStore_DecrementStock_MissingProduct(t *testing.T) {
	db := newTestDB(t)
	store := NewCatalogStore(db)

	err := store.DecrementStock(context.Background(), 12345, 1, false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got: %v", err)
	}
}

func TestCatalogStore_RestoreStock(t *testing.T) {
	db := newTestDB(t)
	store := NewCatalogStore(db)
	ctx := context.Background()
	p := seedProduct(t, db, "drill", 10)

	if err := store.DecrementStock(ctx, p.ID, 4, false); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := store.RestoreStock(ctx, p.ID, 4); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	got, _ := store.Get(ctx, p.ID)
	if got.Quantity != 10 {
		t.Errorf("Expected quantity 10 after restore, got %d", got.Quantity)
	}
}

// Concurrent placements of one unit each against stock S must yield exactly
// min(N, S) successes and never drive the quantity negative.
func TestCatalogStore_ConcurrentDecrement(t *testing.T) {
	db := newTestDB(t)
	store := NewCatalogStore(db)
	ctx := context.Background()

	const stock = 5
	const requests = 8
	p := seedProduct(t, db, "drill", stock)

	var successes int32
	g := new(errgroup.Group)
	for i := 0; i < requests; i++ {
		g.Go(func() error {
			err := store.DecrementStock(ctx, p.ID, 1, false)
			if err == nil {
				atomic.AddInt32(&successes, 1)
				return nil
			}
			if errors.Is(err, ErrInsufficientStock) {
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Expected only stock refusals, got: %v", err)
	}

	if successes != stock {
		t.Errorf("Expected %d successful decrements, got %d", stock, successes)
	}
	got, _ := store.Get(ctx, p.ID)
	if got.Quantity != 0 {
		t.Errorf("Expected final quantity 0, got %d", got.Quantity)
	}
}
