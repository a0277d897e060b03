package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"

	"schnorr-batch/pkg/utilities"
	logger_message "schnorr-batch/pkg/utilities/logger"
	"schnorr-batch/pkg/utilities/timeutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	bodies [][]byte
	err    error
}

func (rp *recordingPublisher) Publish(body utilities.Serializable) error {
	if rp.err != nil {
		return rp.err
	}
	raw, err := body.Serialize()
	if err != nil {
		return err
	}
	rp.bodies = append(rp.bodies, raw)
	return nil
}

func TestLoggerSinkPublishesMessage(t *testing.T) {
	publisher := &recordingPublisher{}
	sink := CreateRabbitmqLoggerSink(publisher, "batch-client")

	sink("run finished", zerolog.InfoLevel, timeutil.TimeUTC{T: 1700000000})

	require.Len(t, publisher.bodies, 1)
	var msg logger_message.LoggerMessage
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &msg))
	assert.Equal(t, "batch-client", msg.Service)
	assert.Equal(t, "info", msg.Level)
	assert.Equal(t, "run finished", msg.Message)
	assert.Equal(t, int64(1700000000), msg.Timestamp.Time().Unix())
}

func TestLoggerSinkSwallowsPublishErrors(t *testing.T) {
	sink := CreateRabbitmqLoggerSink(&recordingPublisher{err: errors.New("closed")}, "batch-client")

	assert.NotPanics(t, func() {
		sink("lost", zerolog.ErrorLevel, timeutil.NowUTC())
	})
}

func TestRabbitmqConfigDefaults(t *testing.T) {
	var raw RabbitmqConfigJson
	require.NoError(t, json.Unmarshal([]byte(`{
		"enabled": true,
		"exchanges": [{"exchange_name": "batch"}],
		"queues": [{"queue_name": "batch.requests", "routing_key": "batch.request", "exchange_binding": "batch", "durable": true}],
		"publishers": [{"publisher_alias": "BatchResultPublisher", "exchange": "batch", "routing_key": "batch.result"}],
		"consumers": [{"consumer_alias": "BatchRequestConsumer", "consumer_tag": "c", "queue_name": "batch.requests"}]
	}`), &raw))

	cfg := raw.ConvertToDomain()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "rabbitmq:5672", cfg.Host)
	require.Len(t, cfg.Exchanges, 1)
	assert.Equal(t, ExchangeDirect, cfg.Exchanges[0].ExchangeType)
	require.Len(t, cfg.Queues, 1)
	assert.True(t, cfg.Queues[0].Durable)
	assert.Equal(t, PublisherAlias("BatchResultPublisher"), cfg.PublishersConfig[0].PublisherAlias)
	assert.Equal(t, ConsumerAlias("BatchRequestConsumer"), cfg.ConsumersConfig[0].ConsumerAlias)
	assert.Equal(t, "batch.requests", cfg.ConsumersConfig[0].QueueName)
}
