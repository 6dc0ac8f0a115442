// Package catalog defines the storefront product model.
package catalog

import (
	caterrors "github.com/shopflow/storefront/internal/catalog/errors"
)

// Variant is a purchasable variation of a product. PriceModifier is added
// to the product price when the variant is selected.
type Variant struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PriceModifier int64    `json:"priceModifier"`
	Options       []string `json:"options"`
}

// Product is a catalog record. Prices are in cents. A zero OriginalPrice
// means the product was never discounted; a zero Rating means unrated.
type Product struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"originalPrice,omitempty"`
	Images        []string  `json:"images"`
	Rating        float64   `json:"rating,omitempty"`
	ReviewCount   int       `json:"reviewCount,omitempty"`
	Featured      bool      `json:"featured"`
	OnSale        bool      `json:"onSale"`
	InStock       bool      `json:"inStock"`
	Variants      []Variant `json:"variants,omitempty"`
}

// Variant looks up a variant by ID.
// Returns ErrVariantNotFound if the product has no such variant.
func (p *Product) Variant(id string) (*Variant, error) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], nil
		}
	}
	return nil, caterrors.ErrVariantNotFound
}
