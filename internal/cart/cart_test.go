package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Apply_Add(t *testing.T) {
	base := []Line{
		{ProductID: "1", VariantID: "default", UnitPrice: 1000, Quantity: 2},
	}

	testCases := []struct {
		name     string
		lines    []Line
		cmd      Add
		expected []Line
	}{
		{
			name:  "appends a new line at the end",
			lines: base,
			cmd:   Add{Line: Line{ProductID: "2", VariantID: "default", UnitPrice: 500, Quantity: 1}},
			expected: []Line{
				{ProductID: "1", VariantID: "default", UnitPrice: 1000, Quantity: 2},
				{ProductID: "2", VariantID: "default", UnitPrice: 500, Quantity: 1},
			},
		},
		{
			name:  "merges into an existing line, keeping its unit price",
			lines: base,
			cmd:   Add{Line: Line{ProductID: "1", VariantID: "default", UnitPrice: 9999, Quantity: 3}},
			expected: []Line{
				{ProductID: "1", VariantID: "default", UnitPrice: 1000, Quantity: 5},
			},
		},
		{
			name:  "same product with a different variant is a separate line",
			lines: base,
			cmd:   Add{Line: Line{ProductID: "1", VariantID: "xl", UnitPrice: 1200, Quantity: 1}},
			expected: []Line{
				{ProductID: "1", VariantID: "default", UnitPrice: 1000, Quantity: 2},
				{ProductID: "1", VariantID: "xl", UnitPrice: 1200, Quantity: 1},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			next := apply(tc.lines, tc.cmd)
			// then
			assert.Equal(t, tc.expected, next)
			// input is never mutated
			assert.Equal(t, base, tc.lines)
		})
	}
}

func Test_Apply_UpdateQuantity(t *testing.T) {
	base := []Line{
		{ProductID: "1", VariantID: "default", UnitPrice: 1000, Quantity: 2},
		{ProductID: "2", VariantID: "default", UnitPrice: 500, Quantity: 1},
	}

	testCases := []struct {
		name     string
		cmd      UpdateQuantity
		expected []Line
	}{
		{
			name: "replaces the quantity of the matching line",
			cmd:  UpdateQuantity{ProductID: "1", VariantID: "default", Quantity: 7},
			expected: []Line{
				{ProductID: "1", VariantID: "default", UnitPrice: 1000, Quantity: 7},
				{ProductID: "2", VariantID: "default", UnitPrice: 500, Quantity: 1},
			},
		},
		{
			name: "zero quantity removes the line",
			cmd:  UpdateQuantity{ProductID: "1", VariantID: "default", Quantity: 0},
			expected: []Line{
				{ProductID: "2", VariantID: "default", UnitPrice: 500, Quantity: 1},
			},
		},
		{
			name: "negative quantity removes the line",
			cmd:  UpdateQuantity{ProductID: "2", VariantID: "default", Quantity: -3},
			expected: []Line{
				{ProductID: "1", VariantID: "default", UnitPrice: 1000, Quantity: 2},
			},
		},
		{
			name:     "missing line is a no-op",
			cmd:      UpdateQuantity{ProductID: "404", VariantID: "default", Quantity: 5},
			expected: base,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := apply(base, tc.cmd)
			assert.Equal(t, tc.expected, next)
		})
	}
}

func Test_Apply_RemoveAndClear(t *testing.T) {
	base := []Line{
		{ProductID: "1", VariantID: "default", Quantity: 2},
		{ProductID: "1", VariantID: "xl", Quantity: 1},
	}

	// remove targets exactly one (productID, variantID) pair
	next := apply(base, Remove{ProductID: "1", VariantID: "xl"})
	assert.Equal(t, []Line{{ProductID: "1", VariantID: "default", Quantity: 2}}, next)

	// removing a missing line changes nothing
	next = apply(base, Remove{ProductID: "404", VariantID: "default"})
	assert.Equal(t, base, next)

	// clear always yields an empty cart
	assert.Empty(t, apply(base, Clear{}))
}

func Test_Apply_LoadReplacesWholesale(t *testing.T) {
	base := []Line{{ProductID: "1", VariantID: "default", Quantity: 2}}
	snapshot := []Line{
		{ProductID: "7", VariantID: "default", UnitPrice: 100, Quantity: 4},
		{ProductID: "8", VariantID: "red", UnitPrice: 250, Quantity: 1},
	}

	next := apply(base, Load{Lines: snapshot})

	assert.Equal(t, snapshot, next)
	// loaded snapshot is copied, not aliased
	snapshot[0].Quantity = 99
	assert.Equal(t, 4, next[0].Quantity)
}

func Test_TotalOf_And_CountOf(t *testing.T) {
	lines := []Line{
		{UnitPrice: 1000, Quantity: 2},
		{UnitPrice: 250, Quantity: 4},
	}

	assert.Equal(t, int64(3000), TotalOf(lines))
	assert.Equal(t, 6, CountOf(lines))
	assert.Equal(t, int64(0), TotalOf(nil))
	assert.Equal(t, 0, CountOf(nil))
}
