package events

import (
	"encoding/json"
	"time"

	"github.com/shopflow/storefront/pkg/messaging"
)

// CartUpdatedEvent summarizes the cart after a committed transition.
type CartUpdatedEvent struct {
	Lines      int       `json:"lines"`
	ItemCount  int       `json:"item_count"`
	TotalPrice int64     `json:"total_price"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e CartUpdatedEvent) Subject() string {
	return messaging.CartUpdatedSubject
}

func (e CartUpdatedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
