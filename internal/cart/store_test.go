package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopflow/storefront/internal/catalog"
)

func testProduct() catalog.Product {
	return catalog.Product{
		ID:     "1",
		Title:  "Wireless Headphones",
		Price:  12999,
		Images: []string{"img/headphones.jpg"},
		Variants: []catalog.Variant{
			{ID: "silver", Name: "Arctic Silver", PriceModifier: 1000},
		},
	}
}

func Test_Store_AddItem_MergesSamePair(t *testing.T) {
	store := NewStore()
	product := testProduct()

	// given two adds for the same (product, variant) pair
	require.NoError(t, store.AddItem(product, nil, 2))
	require.NoError(t, store.AddItem(product, nil, 3))

	// then exactly one line exists with the summed quantity
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "default", items[0].VariantID)
	assert.Equal(t, int64(12999), items[0].UnitPrice)
	assert.Equal(t, "img/headphones.jpg", items[0].ProductImage)
}

func Test_Store_AddItem_PriceFixedAtFirstInsertion(t *testing.T) {
	store := NewStore()
	product := testProduct()
	require.NoError(t, store.AddItem(product, nil, 1))

	// the catalog price changes between adds
	product.Price = 19999
	require.NoError(t, store.AddItem(product, nil, 1))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(12999), items[0].UnitPrice)
	assert.Equal(t, int64(2*12999), store.Total())
}

func Test_Store_AddItem_VariantPriceModifier(t *testing.T) {
	store := NewStore()
	product := testProduct()

	require.NoError(t, store.AddItem(product, &product.Variants[0], 1))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "silver", items[0].VariantID)
	assert.Equal(t, "Arctic Silver", items[0].VariantName)
	assert.Equal(t, int64(13999), items[0].UnitPrice)
}

func Test_Store_AddItem_InvalidQuantity(t *testing.T) {
	store := NewStore()
	product := testProduct()

	for _, quantity := range []int{0, -1, -100} {
		err := store.AddItem(product, nil, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	// state unchanged, no notification side effects to persist
	assert.Empty(t, store.Items())
}

func Test_Store_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddItem(testProduct(), nil, 2))

	store.UpdateQuantity("1", "default", 0)

	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.ItemCount())
}

func Test_Store_UpdateQuantity_MissingLineStillNotifies(t *testing.T) {
	store := NewStore()
	notified := 0
	store.Subscribe(func([]Line) { notified++ })

	// a double-click race on a just-removed row must not crash or error
	store.UpdateQuantity("404", "default", 3)

	assert.Empty(t, store.Items())
	assert.Equal(t, 1, notified)
}

func Test_Store_RemoveItem(t *testing.T) {
	store := NewStore()
	product := testProduct()
	require.NoError(t, store.AddItem(product, nil, 1))
	require.NoError(t, store.AddItem(product, &product.Variants[0], 1))

	store.RemoveItem("1", "default")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "silver", items[0].VariantID)
}

func Test_Store_Clear(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddItem(testProduct(), nil, 4))

	store.Clear()

	assert.Empty(t, store.Items())
	assert.Equal(t, int64(0), store.Total())
	assert.Equal(t, 0, store.ItemCount())
}

func Test_Store_ItemCount_SumsQuantities(t *testing.T) {
	store := NewStore()
	product := testProduct()
	require.NoError(t, store.AddItem(product, nil, 2))
	require.NoError(t, store.AddItem(product, &product.Variants[0], 3))

	// two lines, five units
	assert.Len(t, store.Items(), 2)
	assert.Equal(t, 5, store.ItemCount())
}

func Test_Store_QuantityNeverBelowOne(t *testing.T) {
	store := NewStore()
	product := testProduct()
	require.NoError(t, store.AddItem(product, nil, 3))
	require.NoError(t, store.AddItem(product, &product.Variants[0], 2))

	// a hostile sequence of updates and removes
	store.UpdateQuantity("1", "default", -5)
	store.UpdateQuantity("1", "silver", 1)
	store.RemoveItem("404", "default")
	store.UpdateQuantity("1", "silver", 0)
	require.NoError(t, store.AddItem(product, nil, 1))

	for _, l := range store.Items() {
		assert.GreaterOrEqual(t, l.Quantity, 1)
	}
}

func Test_Store_SubscribersSeeCommitsInOrder(t *testing.T) {
	store := NewStore()
	var counts []int
	store.Subscribe(func(lines []Line) { counts = append(counts, CountOf(lines)) })

	product := testProduct()
	require.NoError(t, store.AddItem(product, nil, 2))
	require.NoError(t, store.AddItem(product, nil, 3))
	store.Clear()

	assert.Equal(t, []int{2, 5, 0}, counts)
}

func Test_Store_Load_ReplacesState(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddItem(testProduct(), nil, 1))

	snapshot := []Line{
		{ProductID: "9", VariantID: "default", ProductTitle: "Wallet", UnitPrice: 3999, Quantity: 2},
	}
	store.Load(snapshot)

	assert.Equal(t, snapshot, store.Items())
	assert.Equal(t, int64(7998), store.Total())
}

func Test_Store_ItemsIsACopy(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddItem(testProduct(), nil, 2))

	items := store.Items()
	items[0].Quantity = 99

	assert.Equal(t, 2, store.Items()[0].Quantity)
}
