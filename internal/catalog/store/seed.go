package store

import "github.com/shopflow/storefront/internal/catalog"

// SeedProducts returns the demo catalog used when the catalog source is
// configured as "memory". Prices are in cents.
func SeedProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:          "1",
			Title:       "Wireless Bluetooth Headphones",
			Description: "Premium over-ear headphones with active noise cancellation and a 30-hour battery.",
			Category:    "Electronics",
			Price:       12999,
			Images:      []string{"https://images.shopflow.dev/products/headphones-1.jpg"},
			Rating:      4.5,
			ReviewCount: 128,
			Featured:    true,
			InStock:     true,
			Variants: []catalog.Variant{
				{ID: "black", Name: "Midnight Black", Options: []string{"Black"}},
				{ID: "silver", Name: "Arctic Silver", PriceModifier: 1000, Options: []string{"Silver"}},
			},
		},
		{
			ID:            "2",
			Title:         "Organic Cotton T-Shirt",
			Description:   "Soft, breathable tee in certified organic cotton.",
			Category:      "Clothing",
			Price:         2499,
			OriginalPrice: 3499,
			Images:        []string{"https://images.shopflow.dev/products/tshirt-1.jpg"},
			Rating:        4.2,
			ReviewCount:   64,
			OnSale:        true,
			InStock:       true,
			Variants: []catalog.Variant{
				{ID: "s", Name: "Small", Options: []string{"S"}},
				{ID: "m", Name: "Medium", Options: []string{"M"}},
				{ID: "l", Name: "Large", Options: []string{"L"}},
			},
		},
		{
			ID:          "3",
			Title:       "Ceramic Pour-Over Coffee Set",
			Description: "Hand-glazed dripper and carafe for slow mornings.",
			Category:    "Home",
			Price:       5499,
			Images:      []string{"https://images.shopflow.dev/products/coffee-set-1.jpg"},
			Rating:      4.8,
			ReviewCount: 42,
			Featured:    true,
			InStock:     true,
		},
		{
			ID:            "4",
			Title:         "Single-Origin Dark Chocolate",
			Description:   "72% cacao bar from a single Ecuadorian estate.",
			Category:      "Food",
			Price:         899,
			OriginalPrice: 1099,
			Images:        []string{"https://images.shopflow.dev/products/chocolate-1.jpg"},
			Rating:        4.6,
			ReviewCount:   210,
			OnSale:        true,
			InStock:       true,
		},
		{
			ID:          "5",
			Title:       "Trail Running Shoes",
			Description: "Lightweight shoes with aggressive grip for technical terrain.",
			Category:    "Sports",
			Price:       11499,
			Images:      []string{"https://images.shopflow.dev/products/shoes-1.jpg"},
			Rating:      4.3,
			ReviewCount: 87,
			InStock:     false,
			Variants: []catalog.Variant{
				{ID: "42", Name: "EU 42", Options: []string{"42"}},
				{ID: "43", Name: "EU 43", Options: []string{"43"}},
			},
		},
		{
			ID:          "6",
			Title:       "Leather Card Wallet",
			Description: "Slim full-grain leather wallet that ages beautifully.",
			Category:    "Accessories",
			Price:       3999,
			Images:      []string{"https://images.shopflow.dev/products/wallet-1.jpg"},
			Rating:      4.1,
			ReviewCount: 33,
			InStock:     true,
		},
	}
}
