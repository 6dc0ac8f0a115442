// Package service provides the implementation of catalog business logic.
package service

import (
	"context"
	"fmt"

	"github.com/shopflow/storefront/internal/catalog"
	"github.com/shopflow/storefront/internal/catalog/store"
)

// CatalogService defines the read operations the storefront needs from the
// catalog. It abstracts the underlying data access.
type CatalogService interface {
	// GetAll returns the full catalog snapshot.
	GetAll(ctx context.Context) ([]catalog.Product, error)

	// GetByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	GetByID(ctx context.Context, id string) (*catalog.Product, error)

	// GetByCategory returns products in the given category,
	// case-insensitively.
	GetByCategory(ctx context.Context, category string) ([]catalog.Product, error)

	// Search returns products matching the query text in their title,
	// description or category.
	Search(ctx context.Context, text string) ([]catalog.Product, error)

	// GetFeatured returns the featured products.
	GetFeatured(ctx context.Context) ([]catalog.Product, error)

	// GetOnSale returns the products currently on sale.
	GetOnSale(ctx context.Context) ([]catalog.Product, error)
}

// Service implements CatalogService over a CatalogStore.
type Service struct {
	repository store.CatalogStore
}

// NewService creates a new CatalogService with the provided store.
func NewService(repo store.CatalogStore) *Service {
	return &Service{repository: repo}
}

// GetAll returns the full catalog snapshot.
func (s *Service) GetAll(ctx context.Context) ([]catalog.Product, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	return products, nil
}

// GetByID retrieves a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}
	return product, nil
}

// GetByCategory returns products in the given category.
func (s *Service) GetByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	products, err := s.repository.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products in category %q: %w", category, err)
	}
	return products, nil
}

// Search returns products matching the query text.
func (s *Service) Search(ctx context.Context, text string) ([]catalog.Product, error) {
	products, err := s.repository.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// GetFeatured returns the featured products.
func (s *Service) GetFeatured(ctx context.Context) ([]catalog.Product, error) {
	products, err := s.repository.FindFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}
	return products, nil
}

// GetOnSale returns the products currently on sale.
func (s *Service) GetOnSale(ctx context.Context) ([]catalog.Product, error) {
	products, err := s.repository.FindOnSale(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch on-sale products: %w", err)
	}
	return products, nil
}
