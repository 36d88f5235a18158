package container

import (
	"context"

	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/pkg/events"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
)

// SubscribeAuditLog logs every tracking event delivered on bus.
func SubscribeAuditLog(bus interfaces.EventBus, log interfaces.Logger) {
	for _, eventType := range domain.EventTypes {
		handler := &events.HandlerFunc{
			Type: "audit." + eventType,
			Fn: func(ctx context.Context, e interfaces.Event) error {
				log.WithContext(ctx).Info("Tracking event",
					interfaces.String("event_type", e.EventType()),
					interfaces.String("aggregate_id", e.AggregateID()))
				return nil
			},
		}
		_ = bus.Subscribe(eventType, handler)
	}
}
