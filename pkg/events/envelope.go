package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reeltrack/reeltrack/pkg/interfaces"
	"github.com/reeltrack/reeltrack/pkg/logger"
)

// Envelope wraps an event with metadata for transport.
type Envelope struct {
	ID          string                 `json:"id"`
	EventType   string                 `json:"event_type"`
	AggregateID string                 `json:"aggregate_id"`
	RequestID   string                 `json:"request_id,omitempty"`
	OccurredAt  time.Time              `json:"occurred_at"`
	Data        map[string]interface{} `json:"data"`
}

// NewEnvelope wraps event with a fresh message id. The id doubles as the
// broker side deduplication key.
func NewEnvelope(ctx context.Context, event interfaces.Event) Envelope {
	return Envelope{
		ID:          uuid.NewString(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		RequestID:   logger.RequestID(ctx),
		OccurredAt:  time.Unix(0, event.Timestamp()).UTC(),
		Data:        event.Payload(),
	}
}
