package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopflow/storefront/internal/catalog"
	caterrors "github.com/shopflow/storefront/internal/catalog/errors"
)

// PgStore implements CatalogStore using PostgreSQL as the data store.
// Products are ordered by their position column, which is the stable
// catalog order.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of CatalogStore using a PostgreSQL
// connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

const productColumns = `id, title, description, category, price, original_price,
	images, rating, review_count, featured, on_sale, in_stock`

// FindAll returns the full catalog snapshot.
func (p *PgStore) FindAll(ctx context.Context) ([]catalog.Product, error) {
	return p.list(ctx, "", nil)
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	products, err := p.list(ctx, "id = $1", []any{id})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, caterrors.ErrProductNotFound
	}
	return &products[0], nil
}

// FindByCategory returns products whose category matches, case-insensitively.
func (p *PgStore) FindByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	return p.list(ctx, "LOWER(category) = LOWER($1)", []any{category})
}

// Search matches the query text against title, description and category.
func (p *PgStore) Search(ctx context.Context, text string) ([]catalog.Product, error) {
	pattern := "%" + text + "%"
	return p.list(ctx, "(title ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)", []any{pattern})
}

// FindFeatured returns the featured products.
func (p *PgStore) FindFeatured(ctx context.Context) ([]catalog.Product, error) {
	return p.list(ctx, "featured", nil)
}

// FindOnSale returns the products currently on sale.
func (p *PgStore) FindOnSale(ctx context.Context) ([]catalog.Product, error) {
	return p.list(ctx, "on_sale", nil)
}

// list runs a product query with an optional WHERE clause and attaches
// variants to every result.
func (p *PgStore) list(ctx context.Context, where string, args []any) ([]catalog.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY position"

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]catalog.Product, 0)
	for rows.Next() {
		var prod catalog.Product
		if err := rows.Scan(
			&prod.ID, &prod.Title, &prod.Description, &prod.Category,
			&prod.Price, &prod.OriginalPrice, &prod.Images,
			&prod.Rating, &prod.ReviewCount,
			&prod.Featured, &prod.OnSale, &prod.InStock,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, prod)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}

	if err := p.attachVariants(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

// attachVariants loads the variants for every listed product in one query.
func (p *PgStore) attachVariants(ctx context.Context, products []catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
	}

	rows, err := p.db.Query(ctx,
		`SELECT product_id, id, name, price_modifier, options
		   FROM product_variants
		  WHERE product_id = ANY($1)
		  ORDER BY position`, ids)
	if err != nil {
		return fmt.Errorf("failed to query product variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var v catalog.Variant
		if err := rows.Scan(&productID, &v.ID, &v.Name, &v.PriceModifier, &v.Options); err != nil {
			return fmt.Errorf("failed to scan variant row: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Variants = append(products[i].Variants, v)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read variant rows: %w", err)
	}
	return nil
}
