package cart

import (
	"sync"

	"github.com/shopflow/storefront/internal/catalog"
)

// DefaultVariantID keys lines for products added without a variant selection.
const DefaultVariantID = "default"

// Subscriber receives the committed line sequence after every transition.
// Subscribers are invoked synchronously while the store lock is held, so
// they see transitions in commit order; they must not call back into the
// store, and slow work such as broker round-trips must be handed off to
// another goroutine.
type Subscriber func(lines []Line)

// Store is the sole owner of the cart aggregate. Every command is applied
// atomically and runs to completion before the next one is admitted;
// external callers only submit commands and read through the query methods.
type Store struct {
	mu    sync.RWMutex
	lines []Line
	subs  []Subscriber
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{lines: []Line{}}
}

// Subscribe registers a change subscriber. Registration order is
// notification order.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// AddItem merges a product (with an optional variant) into the cart.
// Returns ErrInvalidQuantity for a quantity below one, leaving the cart
// unchanged. The effective unit price is the product price plus the
// variant's price modifier; an existing line keeps the price captured at
// its first insertion.
func (s *Store) AddItem(product catalog.Product, variant *catalog.Variant, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	line := Line{
		ProductID:    product.ID,
		VariantID:    DefaultVariantID,
		ProductTitle: product.Title,
		VariantName:  "Default",
		UnitPrice:    product.Price,
		Quantity:     quantity,
	}
	if len(product.Images) > 0 {
		line.ProductImage = product.Images[0]
	}
	if variant != nil {
		line.VariantID = variant.ID
		line.VariantName = variant.Name
		line.UnitPrice = product.Price + variant.PriceModifier
	}

	s.dispatch(Add{Line: line})
	return nil
}

// UpdateQuantity replaces the quantity of the matching line; a quantity of
// zero or less removes it. A missing line is not an error: the command is a
// no-op that still notifies, so UI races on a just-removed row cannot crash.
func (s *Store) UpdateQuantity(productID, variantID string, quantity int) {
	s.dispatch(UpdateQuantity{ProductID: productID, VariantID: variantID, Quantity: quantity})
}

// RemoveItem deletes the matching line if present.
func (s *Store) RemoveItem(productID, variantID string) {
	s.dispatch(Remove{ProductID: productID, VariantID: variantID})
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.dispatch(Clear{})
}

// Load replaces the line sequence with a trusted snapshot.
func (s *Store) Load(lines []Line) {
	s.dispatch(Load{Lines: lines})
}

// Items returns a copy of the line sequence in insertion order.
func (s *Store) Items() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]Line, len(s.lines))
	copy(items, s.lines)
	return items
}

// Total returns the cart total in cents.
func (s *Store) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TotalOf(s.lines)
}

// ItemCount returns the number of units across all lines.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CountOf(s.lines)
}

// dispatch commits a command and notifies subscribers with the new
// sequence. Notification happens under the store lock so subscribers
// observe transitions in commit order.
func (s *Store) dispatch(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = apply(s.lines, cmd)
	snapshot := make([]Line, len(s.lines))
	copy(snapshot, s.lines)
	for _, fn := range s.subs {
		fn(snapshot)
	}
}
