// Package store implements the dual-mode persistence layer: a durable
// MongoDB backing and a volatile in-process fallback behind one interface.
package store

import (
	"context"

	"github.com/warehousekit/warehouse-api/internal/model"
)

// Source tags reported in every response envelope so callers can tell
// persisted results from ephemeral ones.
const (
	SourceDurable  = "durable"
	SourceVolatile = "volatile"
)

// ProductStore is the mutation and query surface shared by both backings.
// A store instance serves exactly one backing; records never migrate
// between backings when the mode flips.
type ProductStore interface {
	// Create assigns an identifier and timestamps and stores the product.
	Create(ctx context.Context, np model.NewProduct) (model.Product, error)

	// List returns all products, newest created first.
	List(ctx context.Context) ([]model.Product, error)

	// Reduce atomically subtracts amount from the product's quantity.
	// Returns ErrNotFound for unknown ids and *InsufficientStockError when
	// the current quantity is below amount; the quantity never goes negative.
	Reduce(ctx context.Context, id string, amount int64) (model.Product, error)

	// Delete removes the product and returns the deleted snapshot together
	// with the count of remaining records.
	Delete(ctx context.Context, id string) (model.Product, int64, error)

	// Search matches the query case-insensitively against name or category,
	// ordered by name ascending.
	Search(ctx context.Context, query string) ([]model.Product, error)

	// Stats aggregates totals over all records. lowStockThreshold is the
	// exclusive upper bound for the low-stock count.
	Stats(ctx context.Context, lowStockThreshold int64) (model.Stats, error)

	// Source reports the backing's source tag.
	Source() string
}
