package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopflow/storefront/internal/catalog"
)

func noFilters() FilterState {
	return FilterState{Sort: SortFeatured, PriceMin: 0, PriceMax: 100000}
}

func ids(products []catalog.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func Test_FilterAndSort_FeaturedPartition(t *testing.T) {
	// featured products first, input order preserved within each side
	products := []catalog.Product{
		{ID: "1", Price: 1000, Featured: false},
		{ID: "2", Price: 3000, Featured: true},
		{ID: "3", Price: 2000, Featured: true},
	}

	result := FilterAndSort(products, noFilters())

	assert.Equal(t, []string{"2", "3", "1"}, ids(result))
}

func Test_FilterAndSort_Filters(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Category: "Electronics", Price: 12999, InStock: true},
		{ID: "2", Category: "Clothing", Price: 2499, InStock: true, OnSale: true},
		{ID: "3", Category: "Electronics", Price: 5499, InStock: false, OnSale: true},
		{ID: "4", Category: "Home", Price: 899, InStock: true},
	}

	testCases := []struct {
		name     string
		mutate   func(*FilterState)
		expected []string
	}{
		{
			name:     "no restriction keeps everything",
			mutate:   func(*FilterState) {},
			expected: []string{"1", "2", "3", "4"},
		},
		{
			name: "category filter keeps only members",
			mutate: func(f *FilterState) {
				f.Categories = map[string]struct{}{"Electronics": {}}
			},
			expected: []string{"1", "3"},
		},
		{
			name: "price range is inclusive at both ends",
			mutate: func(f *FilterState) {
				f.PriceMin = 899
				f.PriceMax = 5499
			},
			expected: []string{"2", "3", "4"},
		},
		{
			name:     "in-stock filter",
			mutate:   func(f *FilterState) { f.InStock = true },
			expected: []string{"1", "2", "4"},
		},
		{
			name:     "on-sale filter",
			mutate:   func(f *FilterState) { f.OnSale = true },
			expected: []string{"2", "3"},
		},
		{
			name: "filters compose",
			mutate: func(f *FilterState) {
				f.Categories = map[string]struct{}{"Electronics": {}, "Clothing": {}}
				f.InStock = true
			},
			expected: []string{"1", "2"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filters := noFilters()
			tc.mutate(&filters)
			assert.Equal(t, tc.expected, ids(FilterAndSort(products, filters)))
		})
	}
}

func Test_FilterAndSort_SortModes(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Title: "banana stand", Price: 3000, Rating: 4.0},
		{ID: "2", Title: "Apple Crate", Price: 1000, Rating: 4.5},
		{ID: "3", Title: "cherry Box", Price: 2000},
	}

	testCases := []struct {
		name     string
		sort     SortMode
		expected []string
	}{
		{name: "price ascending", sort: SortPriceLow, expected: []string{"2", "3", "1"}},
		{name: "price descending", sort: SortPriceHigh, expected: []string{"1", "3", "2"}},
		// collation is case-insensitive, unlike a byte compare
		{name: "name is locale-aware", sort: SortName, expected: []string{"2", "1", "3"}},
		// absent rating sorts as zero
		{name: "rating descending", sort: SortRating, expected: []string{"2", "1", "3"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filters := noFilters()
			filters.Sort = tc.sort
			assert.Equal(t, tc.expected, ids(FilterAndSort(products, filters)))
		})
	}
}

func Test_FilterAndSort_StabilityOnEqualKeys(t *testing.T) {
	// identical sort keys under every mode: input order must survive
	products := []catalog.Product{
		{ID: "a", Title: "Same", Price: 1000, Rating: 4.0, Featured: true},
		{ID: "b", Title: "Same", Price: 1000, Rating: 4.0, Featured: true},
		{ID: "c", Title: "Same", Price: 1000, Rating: 4.0, Featured: true},
	}

	for _, mode := range []SortMode{SortFeatured, SortPriceLow, SortPriceHigh, SortName, SortRating} {
		t.Run(string(mode), func(t *testing.T) {
			filters := noFilters()
			filters.Sort = mode
			assert.Equal(t, []string{"a", "b", "c"}, ids(FilterAndSort(products, filters)))
		})
	}
}

func Test_FilterAndSort_Idempotent(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Category: "Electronics", Price: 12999, Featured: true, InStock: true},
		{ID: "2", Category: "Clothing", Price: 2499, OnSale: true, InStock: true},
		{ID: "3", Category: "Home", Price: 5499, Featured: true, InStock: true},
		{ID: "4", Category: "Food", Price: 899, InStock: true},
	}

	for _, mode := range []SortMode{SortFeatured, SortPriceLow, SortPriceHigh, SortName, SortRating} {
		filters := noFilters()
		filters.Sort = mode

		once := FilterAndSort(products, filters)
		twice := FilterAndSort(once, filters)
		assert.Equal(t, once, twice, "mode %s", mode)
	}
}

func Test_FilterAndSort_DoesNotMutateInput(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Price: 3000},
		{ID: "2", Price: 1000},
	}

	filters := noFilters()
	filters.Sort = SortPriceLow
	FilterAndSort(products, filters)

	assert.Equal(t, []string{"1", "2"}, ids(products))
}

func Test_FilterAndSort_EmptyCatalog(t *testing.T) {
	assert.Empty(t, FilterAndSort(nil, noFilters()))
}

func Test_SortMode_Valid(t *testing.T) {
	for _, mode := range []SortMode{SortFeatured, SortPriceLow, SortPriceHigh, SortName, SortRating} {
		assert.True(t, mode.Valid())
	}
	assert.False(t, SortMode("newest").Valid())
	assert.False(t, SortMode("").Valid())
}
