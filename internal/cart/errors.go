package cart

import "errors"

// ErrInvalidQuantity is returned when AddItem is called with a quantity
// below one. The cart state is left unchanged.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")
