package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeltrack/reeltrack/pkg/events"
	"github.com/reeltrack/reeltrack/pkg/interfaces"
	"github.com/reeltrack/reeltrack/pkg/logger"
)

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()
	bus := events.NewInMemoryEventBus(logger.NewNoop())
	require.NoError(t, bus.Start(ctx))
	defer bus.Stop()

	var received []string
	ok := &events.HandlerFunc{Type: "review.recorded", Fn: func(ctx context.Context, e interfaces.Event) error {
		received = append(received, e.AggregateID())
		return nil
	}}
	failing := &events.HandlerFunc{Type: "review.recorded", Fn: func(ctx context.Context, e interfaces.Event) error {
		return errors.New("handler down")
	}}

	require.NoError(t, bus.Subscribe("review.recorded", failing))
	require.NoError(t, bus.Subscribe("review.recorded", ok))

	t.Run("delivers past failing handlers", func(t *testing.T) {
		evt := events.NewAggregateEvent("review.recorded", "r1", map[string]interface{}{"rating": 9.0})
		require.NoError(t, bus.Publish(ctx, evt))
		assert.Equal(t, []string{"r1"}, received)
	})

	t.Run("ignores other event types", func(t *testing.T) {
		require.NoError(t, bus.Publish(ctx, events.NewEvent("list.created", nil)))
		assert.Len(t, received, 1)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		require.NoError(t, bus.Unsubscribe("review.recorded", ok))
		require.NoError(t, bus.Publish(ctx, events.NewAggregateEvent("review.recorded", "r2", nil)))
		assert.Len(t, received, 1)
	})
}

func TestNewEventDefaultsPayload(t *testing.T) {
	evt := events.NewEvent("watched.marked", nil)
	assert.NotNil(t, evt.Payload())
	assert.NotZero(t, evt.Timestamp())
	assert.Equal(t, "", evt.AggregateID())
}
