package store

import (
	"context"
	"strings"
	"sync"

	"github.com/shopflow/storefront/internal/catalog"
	caterrors "github.com/shopflow/storefront/internal/catalog/errors"
)

// inMemory implements CatalogStore over a product slice. The slice order is
// the stable catalog order seen by callers.
type inMemory struct {
	mu       sync.RWMutex
	products []catalog.Product
}

// NewInMemoryStore creates a CatalogStore backed by the given products.
func NewInMemoryStore(products []catalog.Product) CatalogStore {
	snapshot := make([]catalog.Product, len(products))
	copy(snapshot, products)
	return &inMemory{products: snapshot}
}

// FindAll returns a copy of the full catalog.
func (s *inMemory) FindAll(_ context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]catalog.Product, len(s.products))
	copy(list, s.products)
	return list, nil
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, caterrors.ErrProductNotFound
}

// FindByCategory returns products in the given category, case-insensitively.
func (s *inMemory) FindByCategory(_ context.Context, category string) ([]catalog.Product, error) {
	return s.filter(func(p catalog.Product) bool {
		return strings.EqualFold(p.Category, category)
	}), nil
}

// Search matches the query text against title, description and category.
func (s *inMemory) Search(_ context.Context, text string) ([]catalog.Product, error) {
	term := strings.ToLower(text)
	return s.filter(func(p catalog.Product) bool {
		return strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category), term)
	}), nil
}

// FindFeatured returns the featured products.
func (s *inMemory) FindFeatured(_ context.Context) ([]catalog.Product, error) {
	return s.filter(func(p catalog.Product) bool { return p.Featured }), nil
}

// FindOnSale returns the products currently on sale.
func (s *inMemory) FindOnSale(_ context.Context) ([]catalog.Product, error) {
	return s.filter(func(p catalog.Product) bool { return p.OnSale }), nil
}

func (s *inMemory) filter(keep func(catalog.Product) bool) []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			list = append(list, p)
		}
	}
	return list
}
