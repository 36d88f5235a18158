package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reeltrack/reeltrack/internal/tracking/constants"
	"github.com/reeltrack/reeltrack/internal/tracking/domain"
	"github.com/reeltrack/reeltrack/internal/tracking/repository"
	"github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
	"github.com/reeltrack/reeltrack/pkg/pagination"
)

// Option customizes a service.
type Option func(*base)

// WithClock sets the time source for created and updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// WithIDGenerator sets how new row ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(b *base) { b.newID = gen }
}

// WithPolicy overrides the rating and length limits.
func WithPolicy(p domain.Policy) Option {
	return func(b *base) { b.policy = p }
}

// base carries what every tracking service needs: a transaction boundary,
// a place to send events once a write has committed, and logging.
type base struct {
	tx        repository.Transactor
	paginator *pagination.Paginator
	publisher interfaces.EventPublisher
	logger    interfaces.Logger
	policy    domain.Policy
	now       func() time.Time
	newID     func() string
}

func newBase(
	tx repository.Transactor,
	paginator *pagination.Paginator,
	publisher interfaces.EventPublisher,
	logger interfaces.Logger,
	opts []Option,
) base {
	b := base{
		tx:        tx,
		paginator: paginator,
		publisher: publisher,
		logger:    logger,
		policy:    domain.DefaultPolicy(),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// publish sends events after commit. A failed publish is logged and does not
// undo the write.
func (b *base) publish(ctx context.Context, evts ...interfaces.Event) {
	if b.publisher == nil {
		return
	}
	for _, evt := range evts {
		if err := b.publisher.Publish(ctx, evt); err != nil {
			b.logger.Error("Failed to publish event",
				interfaces.String("event_type", evt.EventType()),
				interfaces.String("aggregate_id", evt.AggregateID()),
				interfaces.Error(err))
		}
	}
}

// fail logs storage failures loudly and client errors quietly, then returns err.
func (b *base) fail(msg string, err error, fields ...interfaces.Field) error {
	fields = append(fields, interfaces.Error(err))
	if errors.IsStorage(err) || errors.TypeOf(err) == "" {
		b.logger.Error(msg, fields...)
	} else {
		b.logger.Debug(msg, fields...)
	}
	return err
}

func (b *base) window(req pagination.Request) (pagination.Window, error) {
	w, err := b.paginator.Window(req)
	if err != nil {
		return pagination.Window{}, errors.Validation("page_token", err.Error())
	}
	return w, nil
}

func buildPage[T any](b *base, w pagination.Window, rows []T) (pagination.Page[T], error) {
	page, err := pagination.Build(b.paginator, w, rows)
	if err != nil {
		return pagination.Page[T]{}, errors.Storage("encode page token", err)
	}
	return page, nil
}

func requireRef(ref domain.MediaRef) error {
	if ref.IsZero() {
		return errors.InvalidReference(domain.ErrNoneProvided)
	}
	return nil
}

func mediaFields(userID string, ref domain.MediaRef) []interfaces.Field {
	return []interfaces.Field{
		interfaces.String(constants.FieldUserID, userID),
		interfaces.String(constants.FieldMediaType, string(ref.Kind())),
		interfaces.Int64(constants.FieldMediaID, ref.ID()),
	}
}
