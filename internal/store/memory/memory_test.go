package memory

import (
	"context"
	"errors"
	"testing"

	"pedidos/internal/core"
	"pedidos/internal/store"
)

func testPurchase(id string, dateDay int, createdAt int64) core.Purchase {
	return core.Purchase{
		ID:         id,
		Dish:       "Prato",
		Restaurant: "Restaurante",
		Paid:       core.Money{Cents: 2500},
		Date:       core.NewDate(2026, 8, dateDay),
		Time:       "12:30",
		CategoryID: "outras",
		CreatedAt:  createdAt,
	}
}

func TestPurchaseLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	p := testPurchase("p-1", 10, 100)
	if err := s.CreatePurchase(ctx, p); err != nil {
		t.Fatalf("CreatePurchase() error = %v", err)
	}

	got, err := s.GetPurchase(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetPurchase() error = %v", err)
	}
	if got.Dish != "Prato" || got.Paid.Cents != 2500 {
		t.Errorf("GetPurchase() = %+v", got)
	}

	p.Dish = "Prato atualizado"
	if err := s.UpdatePurchase(ctx, p); err != nil {
		t.Fatalf("UpdatePurchase() error = %v", err)
	}
	got, _ = s.GetPurchase(ctx, "p-1")
	if got.Dish != "Prato atualizado" {
		t.Errorf("after update dish = %q", got.Dish)
	}

	if err := s.DeletePurchase(ctx, "p-1"); err != nil {
		t.Fatalf("DeletePurchase() error = %v", err)
	}
	if _, err := s.GetPurchase(ctx, "p-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetPurchase() after delete error = %v, want ErrNotFound", err)
	}
}

func TestNotFoundErrors(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.UpdatePurchase(ctx, testPurchase("missing", 10, 0)); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdatePurchase() error = %v, want ErrNotFound", err)
	}
	if err := s.DeletePurchase(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeletePurchase() error = %v, want ErrNotFound", err)
	}
	if err := s.UpdateCategory(ctx, core.Category{ID: "missing"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateCategory() error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteCategory(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteCategory() error = %v, want ErrNotFound", err)
	}
}

func TestListPurchases_Ordering(t *testing.T) {
	ctx := context.Background()
	s := New()

	// Inserted out of order on purpose.
	for _, p := range []core.Purchase{
		testPurchase("old", 5, 100),
		testPurchase("newest", 12, 300),
		testPurchase("same-day-earlier", 12, 200),
	} {
		if err := s.CreatePurchase(ctx, p); err != nil {
			t.Fatalf("CreatePurchase() error = %v", err)
		}
	}

	got, err := s.ListPurchases(ctx)
	if err != nil {
		t.Fatalf("ListPurchases() error = %v", err)
	}
	wantIDs := []string{"newest", "same-day-earlier", "old"}
	if len(got) != len(wantIDs) {
		t.Fatalf("ListPurchases() returned %d purchases, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("ListPurchases()[%d] = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.EnsureDefaultCategories(ctx, 42); err != nil {
		t.Fatalf("EnsureDefaultCategories() error = %v", err)
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(categories) != 6 {
		t.Fatalf("ListCategories() returned %d categories, want 6", len(categories))
	}
	if categories[0].Label != "Fast Food" || categories[5].Label != "Outras" {
		t.Errorf("categories not in sort order: first=%q last=%q", categories[0].Label, categories[5].Label)
	}

	t.Run("seeding is idempotent", func(t *testing.T) {
		if err := s.EnsureDefaultCategories(ctx, 99); err != nil {
			t.Fatalf("EnsureDefaultCategories() error = %v", err)
		}
		categories, _ := s.ListCategories(ctx)
		if len(categories) != 6 {
			t.Errorf("re-seeding changed category count to %d", len(categories))
		}
		if categories[0].CreatedAt != 42 {
			t.Errorf("re-seeding overwrote createdAt: %d", categories[0].CreatedAt)
		}
	})

	t.Run("default categories cannot be deleted", func(t *testing.T) {
		if err := s.DeleteCategory(ctx, "fast-food"); !errors.Is(err, store.ErrDefaultCategory) {
			t.Errorf("DeleteCategory(default) error = %v, want ErrDefaultCategory", err)
		}
	})

	t.Run("custom categories can be deleted", func(t *testing.T) {
		custom := core.Category{ID: "pizza", Label: "Pizza", Emoji: "🍕", Color: "#cc2222", Order: 7}
		if err := s.CreateCategory(ctx, custom); err != nil {
			t.Fatalf("CreateCategory() error = %v", err)
		}
		if err := s.DeleteCategory(ctx, "pizza"); err != nil {
			t.Errorf("DeleteCategory(custom) error = %v", err)
		}
	})
}
