// Package query implements the catalog projection: filtering a product
// snapshot under user-selected criteria and ordering the result.
package query

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shopflow/storefront/internal/catalog"
)

// SortMode selects the ordering applied after filtering.
type SortMode string

const (
	SortFeatured  SortMode = "featured"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
	SortName      SortMode = "name"
	SortRating    SortMode = "rating"
)

// Valid reports whether the mode is one of the supported sort modes.
func (m SortMode) Valid() bool {
	switch m {
	case SortFeatured, SortPriceLow, SortPriceHigh, SortName, SortRating:
		return true
	}
	return false
}

// FilterState is the complete set of narrowing and ordering criteria.
// An empty Categories set means no category restriction.
type FilterState struct {
	Sort       SortMode
	PriceMin   int64
	PriceMax   int64
	Categories map[string]struct{}
	InStock    bool
	OnSale     bool
}

// FilterAndSort projects a catalog snapshot under a FilterState. The input
// is never mutated; the result is a new slice. Filter order is category,
// price, stock, sale; every sort mode is stable, so products with equal
// keys keep their input order. The featured mode is a stable partition:
// featured products first, each side preserving input order.
func FilterAndSort(products []catalog.Product, filters FilterState) []catalog.Product {
	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if len(filters.Categories) > 0 {
			if _, ok := filters.Categories[p.Category]; !ok {
				continue
			}
		}
		if p.Price < filters.PriceMin || p.Price > filters.PriceMax {
			continue
		}
		if filters.InStock && !p.InStock {
			continue
		}
		if filters.OnSale && !p.OnSale {
			continue
		}
		filtered = append(filtered, p)
	}

	switch filters.Sort {
	case SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case SortName:
		c := collate.New(language.English)
		sort.SliceStable(filtered, func(i, j int) bool {
			return c.CompareString(filtered[i].Title, filtered[j].Title) < 0
		})
	case SortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	default: // featured
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Featured && !filtered[j].Featured
		})
	}

	return filtered
}
