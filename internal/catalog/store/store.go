// Package store provides an interface for catalog storage operations.
package store

import (
	"context"

	"github.com/shopflow/storefront/internal/catalog"
)

// CatalogStore is an interface for catalog read operations. It abstracts
// the underlying data store, allowing for different implementations
// (e.g., in-memory, database). All listing operations return products in a
// stable catalog order.
type CatalogStore interface {
	// FindAll returns the full catalog snapshot.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]catalog.Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*catalog.Product, error)

	// FindByCategory returns products whose category matches,
	// case-insensitively.
	FindByCategory(ctx context.Context, category string) ([]catalog.Product, error)

	// Search returns products whose title, description or category contains
	// the query text, case-insensitively.
	Search(ctx context.Context, text string) ([]catalog.Product, error)

	// FindFeatured returns the featured products.
	FindFeatured(ctx context.Context) ([]catalog.Product, error)

	// FindOnSale returns the products currently on sale.
	FindOnSale(ctx context.Context) ([]catalog.Product, error)
}
