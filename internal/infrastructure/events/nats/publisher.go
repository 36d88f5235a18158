package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/reeltrack/reeltrack/pkg/events"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
)

const publishTimeout = 5 * time.Second

// streamPublisher is the part of jetstream.JetStream the publisher uses.
type streamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher implements interfaces.EventPublisher using NATS JetStream
type Publisher struct {
	js     streamPublisher
	prefix string
	logger *zap.Logger
}

// NewPublisher creates a new NATS event publisher
func NewPublisher(client *Client, logger *zap.Logger) *Publisher {
	return &Publisher{
		js:     client.JetStream(),
		prefix: client.SubjectPrefix(),
		logger: logger.Named("publisher"),
	}
}

var _ interfaces.EventPublisher = (*Publisher)(nil)

// Publish sends event to <prefix>.<event type>.
func (p *Publisher) Publish(ctx context.Context, event interfaces.Event) error {
	subject := p.subjectFor(event)
	envelope := events.NewEnvelope(ctx, event)

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	ack, err := p.js.Publish(pubCtx, subject, data, jetstream.WithMsgID(envelope.ID))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("event_id", envelope.ID),
		zap.String("event_type", envelope.EventType),
		zap.String("subject", subject),
		zap.Uint64("sequence", ack.Sequence),
		zap.String("stream", ack.Stream),
	)
	return nil
}

func (p *Publisher) subjectFor(event interfaces.Event) string {
	return p.prefix + "." + event.EventType()
}
