package billing

import (
	"time"
)

// ProcessedEvent is a dedupe marker for a handled Stripe event. Stripe
// retries webhook deliveries, so every event is recorded by its id and
// replays are dropped.
type ProcessedEvent struct {
	ID          string    `bson:"_id" json:"id"`
	Type        string    `bson:"type" json:"type"`
	ProcessedAt time.Time `bson:"processed_at" json:"processed_at"`
}
