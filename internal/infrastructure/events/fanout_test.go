package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraevents "github.com/reeltrack/reeltrack/internal/infrastructure/events"
	"github.com/reeltrack/reeltrack/pkg/events"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
	"github.com/reeltrack/reeltrack/pkg/logger"
)

type failing struct{ err error }

func (f failing) Publish(context.Context, interfaces.Event) error { return f.err }

func TestFanoutDeliversToEveryTarget(t *testing.T) {
	bus := events.NewInMemoryEventBus(logger.NewNoop())

	var got []string
	require.NoError(t, bus.Subscribe("list.created", &events.HandlerFunc{
		Type: "list.created",
		Fn: func(_ context.Context, e interfaces.Event) error {
			got = append(got, e.AggregateID())
			return nil
		},
	}))

	brokerDown := errors.New("broker down")
	fanout := infraevents.NewFanout(failing{brokerDown}, nil, bus)
	assert.Equal(t, 2, fanout.Len())

	err := fanout.Publish(context.Background(), events.NewAggregateEvent("list.created", "l1", nil))
	assert.ErrorIs(t, err, brokerDown)
	assert.Equal(t, []string{"l1"}, got, "later targets still receive the event")
}

func TestFanoutEmpty(t *testing.T) {
	assert.NoError(t, infraevents.NewFanout().Publish(context.Background(), events.NewEvent("review.deleted", nil)))
}
