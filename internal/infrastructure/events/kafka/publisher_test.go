package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/reeltrack/reeltrack/internal/infrastructure/events/kafka"
	"github.com/reeltrack/reeltrack/pkg/events"
)

func TestPublisherSendsEnvelope(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var env events.Envelope
		if err := json.Unmarshal(val, &env); err != nil {
			return err
		}
		if env.EventType != "list.item_added" || env.AggregateID != "l1" {
			return errors.New("unexpected envelope")
		}
		return nil
	})

	publisher := kafka.NewPublisherWithProducer(producer, "reeltrack.events", zaptest.NewLogger(t))
	defer publisher.Close()

	evt := events.NewAggregateEvent("list.item_added", "l1", map[string]interface{}{"media_id": int64(1)})
	require.NoError(t, publisher.Publish(context.Background(), evt))
}

func TestPublisherReturnsSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := kafka.NewPublisherWithProducer(producer, "reeltrack.events", zaptest.NewLogger(t))
	defer publisher.Close()

	err := publisher.Publish(context.Background(), events.NewEvent("review.deleted", nil))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}
