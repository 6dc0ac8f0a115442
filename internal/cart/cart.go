// Package cart owns the storefront cart aggregate and its mutation rules.
package cart

// Line is one row of the cart, keyed by (ProductID, VariantID).
// UnitPrice is captured when the line is first inserted and never re-derived.
type Line struct {
	ProductID    string `json:"productId"`
	VariantID    string `json:"variantId"`
	ProductTitle string `json:"productTitle"`
	ProductImage string `json:"productImageRef"`
	VariantName  string `json:"variantLabel"`
	UnitPrice    int64  `json:"unitPrice"` // Price in cents
	Quantity     int    `json:"quantity"`
}

// Command is a cart state transition request. Commands are interpreted by
// apply, which is a pure function over the line sequence.
type Command interface {
	isCommand()
}

// Add merges a line into the cart. An existing (ProductID, VariantID) line
// has its quantity incremented and keeps its original unit price; otherwise
// the line is appended at the end.
type Add struct {
	Line Line
}

// UpdateQuantity replaces the quantity of the matching line. A quantity of
// zero or less removes the line.
type UpdateQuantity struct {
	ProductID string
	VariantID string
	Quantity  int
}

// Remove deletes the matching line if present.
type Remove struct {
	ProductID string
	VariantID string
}

// Clear empties the cart unconditionally.
type Clear struct{}

// Load replaces the entire line sequence with an already-normalized
// snapshot, bypassing merge logic. Used for startup rehydration.
type Load struct {
	Lines []Line
}

func (Add) isCommand()            {}
func (UpdateQuantity) isCommand() {}
func (Remove) isCommand()         {}
func (Clear) isCommand()          {}
func (Load) isCommand()           {}

// apply computes the next line sequence for a command. It never mutates its
// input and is total: every well-formed command yields a valid cart.
func apply(lines []Line, cmd Command) []Line {
	switch c := cmd.(type) {
	case Add:
		next := make([]Line, len(lines))
		copy(next, lines)
		for i := range next {
			if next[i].ProductID == c.Line.ProductID && next[i].VariantID == c.Line.VariantID {
				next[i].Quantity += c.Line.Quantity
				return next
			}
		}
		return append(next, c.Line)

	case UpdateQuantity:
		if c.Quantity <= 0 {
			return apply(lines, Remove{ProductID: c.ProductID, VariantID: c.VariantID})
		}
		next := make([]Line, len(lines))
		copy(next, lines)
		for i := range next {
			if next[i].ProductID == c.ProductID && next[i].VariantID == c.VariantID {
				next[i].Quantity = c.Quantity
			}
		}
		return next

	case Remove:
		next := make([]Line, 0, len(lines))
		for _, l := range lines {
			if l.ProductID == c.ProductID && l.VariantID == c.VariantID {
				continue
			}
			next = append(next, l)
		}
		return next

	case Clear:
		return []Line{}

	case Load:
		next := make([]Line, len(c.Lines))
		copy(next, c.Lines)
		return next
	}
	return lines
}

// TotalOf returns the cart total in cents for a line sequence.
func TotalOf(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}

// CountOf returns the number of units across all lines, not the line count.
func CountOf(lines []Line) int {
	var count int
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}
