// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductStore is an interface for product storage operations.
// Every Save replaces the whole persisted collection; there are no partial writes.
type ProductStore interface {
	// Load returns every persisted product in insertion order.
	// A missing or unreadable collection is reported as an empty slice, not as an error.
	Load(ctx context.Context) ([]Product, error)

	// Save persists the full collection, overwriting whatever was stored before.
	Save(ctx context.Context, products []Product) error
}

// Product represents a product entity in the store.
type Product struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// cloneProducts returns a copy that never aliases the caller's backing array.
func cloneProducts(products []Product) []Product {
	list := make([]Product, len(products))
	copy(list, products)
	return list
}
