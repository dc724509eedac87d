// Package store declares the persistence ports the HTTP server and the
// backup worker depend on. Adapters live in subpackages and in
// internal/storage.
package store

import (
	"context"
	"errors"

	"pedidos/internal/core"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDefaultCategory is returned on attempts to delete a seeded
	// default category.
	ErrDefaultCategory = errors.New("default categories cannot be deleted")
)

type (
	// PurchaseStore is the port for the purchase lifecycle.
	PurchaseStore interface {
		CreatePurchase(ctx context.Context, p core.Purchase) error
		UpdatePurchase(ctx context.Context, p core.Purchase) error
		DeletePurchase(ctx context.Context, id string) error
		GetPurchase(ctx context.Context, id string) (core.Purchase, error)
		// ListPurchases returns every purchase, newest first.
		ListPurchases(ctx context.Context) ([]core.Purchase, error)
	}

	// CategoryStore is the port for category management. Implementations
	// must refuse to delete default categories.
	CategoryStore interface {
		CreateCategory(ctx context.Context, c core.Category) error
		UpdateCategory(ctx context.Context, c core.Category) error
		DeleteCategory(ctx context.Context, id string) error
		// ListCategories returns every category ordered by sort order.
		ListCategories(ctx context.Context) ([]core.Category, error)
		// EnsureDefaultCategories seeds the six default categories when
		// the table is empty. Safe to call on every startup.
		EnsureDefaultCategories(ctx context.Context, nowMillis int64) error
	}

	// Store is the full persistence surface the server wires up.
	Store interface {
		PurchaseStore
		CategoryStore
		Close() error
	}
)
