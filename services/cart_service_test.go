package services

import (
	"context"
	"errors"
	"testing"

	"perfume-store/models"
	"perfume-store/repositories"
)

func testInput(productID string, size, price float64) models.CartLineInput {
	return models.CartLineInput{
		ProductID: productID,
		Name:      "Noir Absolu",
		Size:      size,
		UnitPrice: price,
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "s1", repositories.NewMemoryCartRepository())

	store.AddItem(ctx, testInput("p1", 10, 45))
	store.AddItem(ctx, testInput("p1", 10, 45))

	lines := store.Snapshot()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
	if lines[0].CartItemID != "p1-10ml" {
		t.Fatalf("unexpected cart item id %q", lines[0].CartItemID)
	}
}

func TestAddItemDifferentSizesStaySeparate(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "s1", repositories.NewMemoryCartRepository())

	store.AddItem(ctx, testInput("p1", 10, 45))
	store.AddItem(ctx, testInput("p1", 50, 120))

	if store.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", store.Len())
	}
	if store.TotalQuantity() != 2 {
		t.Fatalf("expected total quantity 2, got %d", store.TotalQuantity())
	}
}

func TestRemoveItemDeletesWholeLine(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "s1", repositories.NewMemoryCartRepository())

	store.AddItem(ctx, testInput("p1", 10, 45))
	store.AddItem(ctx, testInput("p1", 10, 45))
	store.AddItem(ctx, testInput("p1", 10, 45))

	store.RemoveItem(ctx, "p1-10ml")

	if store.Len() != 0 {
		t.Fatalf("removal must delete the whole line, got %d lines", store.Len())
	}
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "s1", repositories.NewMemoryCartRepository())

	store.AddItem(ctx, testInput("p1", 10, 45))
	store.RemoveItem(ctx, "nope-5ml")

	if store.Len() != 1 {
		t.Fatalf("expected 1 line after no-op removal, got %d", store.Len())
	}
}

func TestCartSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryCartRepository()

	store := NewCartStore(ctx, "s1", repo)
	store.AddItem(ctx, testInput("p1", 10, 45))
	store.AddItem(ctx, testInput("p2", 50, 120))

	restored := NewCartStore(ctx, "s1", repo)
	if restored.Len() != 2 {
		t.Fatalf("expected 2 lines after restore, got %d", restored.Len())
	}
	if restored.Subtotal() != 165 {
		t.Fatalf("expected subtotal 165 after restore, got %v", restored.Subtotal())
	}
}

func TestMalformedSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryCartRepository()

	store := NewCartStore(ctx, "s1", repo)
	store.AddItem(ctx, testInput("p1", 10, 45))

	repo.Corrupt("s1")

	restored := NewCartStore(ctx, "s1", repo)
	if restored.Len() != 0 {
		t.Fatalf("malformed snapshot must start empty, got %d lines", restored.Len())
	}

	// The degraded store keeps working and re-persists cleanly.
	restored.AddItem(ctx, testInput("p2", 50, 120))
	again := NewCartStore(ctx, "s1", repo)
	if again.Len() != 1 {
		t.Fatalf("expected 1 line after recovery, got %d", again.Len())
	}
}

type failingCartStorage struct{}

func (failingCartStorage) Load(ctx context.Context, key string) ([]models.CartLine, error) {
	return nil, errors.New("storage down")
}

func (failingCartStorage) Save(ctx context.Context, key string, lines []models.CartLine) error {
	return errors.New("storage down")
}

func (failingCartStorage) Delete(ctx context.Context, key string) error {
	return errors.New("storage down")
}

func TestStorageFailureNeverRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "s1", failingCartStorage{})

	store.AddItem(ctx, testInput("p1", 10, 45))
	if store.Len() != 1 {
		t.Fatalf("save failure must not roll back the mutation, got %d lines", store.Len())
	}

	store.Clear(ctx)
	if store.Len() != 0 {
		t.Fatalf("clear must empty the cart even when storage fails, got %d lines", store.Len())
	}
}

func TestClearEmptiesPersistedSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryCartRepository()

	store := NewCartStore(ctx, "s1", repo)
	store.AddItem(ctx, testInput("p1", 10, 45))
	store.Clear(ctx)

	restored := NewCartStore(ctx, "s1", repo)
	if restored.Len() != 0 {
		t.Fatalf("expected empty cart after clear and restore, got %d lines", restored.Len())
	}
}

func TestSubscribersRunOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "s1", repositories.NewMemoryCartRepository())

	var calls int
	unsubscribe := store.Subscribe(func() { calls++ })

	store.AddItem(ctx, testInput("p1", 10, 45))
	store.RemoveItem(ctx, "p1-10ml")
	store.Clear(ctx)

	if calls != 3 {
		t.Fatalf("expected 3 notifications, got %d", calls)
	}

	unsubscribe()
	store.AddItem(ctx, testInput("p1", 10, 45))
	if calls != 3 {
		t.Fatalf("unsubscribed fn must not run, got %d calls", calls)
	}
}

func TestSubtotalAndTotalQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(ctx, "s1", repositories.NewMemoryCartRepository())

	store.AddItem(ctx, testInput("p1", 10, 45))
	store.AddItem(ctx, testInput("p1", 10, 45))
	store.AddItem(ctx, testInput("p2", 50, 120))

	if got := store.Subtotal(); got != 210 {
		t.Fatalf("expected subtotal 210, got %v", got)
	}
	if got := store.TotalQuantity(); got != 3 {
		t.Fatalf("expected total quantity 3, got %d", got)
	}
}

func TestCartManagerSharesOneStorePerSession(t *testing.T) {
	ctx := context.Background()
	manager := NewCartManager(repositories.NewMemoryCartRepository())

	a := manager.Get(ctx, "s1")
	b := manager.Get(ctx, "s1")
	if a != b {
		t.Fatal("same session must share one store")
	}

	other := manager.Get(ctx, "s2")
	if other == a {
		t.Fatal("different sessions must not share a store")
	}
}
