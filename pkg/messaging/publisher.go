// Package messaging defines the event publishing contract.
package messaging

import (
	"context"
)

// CartUpdatedSubject carries cart change summaries.
const CartUpdatedSubject = "cart.updated"

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
