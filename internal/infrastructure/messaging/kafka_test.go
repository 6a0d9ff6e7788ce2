package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/config"
	"shop-backend/internal/shared"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestOrderEventPublisher_PublishNewOrder(t *testing.T) {
	w := &recordingWriter{}
	p := NewOrderEventPublisher(w)
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	err := p.PublishNewOrder(context.Background(), shared.OrderCreatedPayload{OrderID: "o-1", Number: 42, Total: "185"})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "o-1", string(msg.Key))
	assert.Equal(t, "event", msg.Headers[0].Key)
	assert.Equal(t, EventNewOrder, string(msg.Headers[0].Value))

	var decoded struct {
		Event string                     `json:"event"`
		Data  shared.OrderCreatedPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "new:order", decoded.Event)
	assert.Equal(t, int64(42), decoded.Data.Number)
}

func TestOrderEventPublisher_WriteError(t *testing.T) {
	p := NewOrderEventPublisher(&recordingWriter{err: errors.New("broker down")})

	err := p.PublishNewOrder(context.Background(), shared.OrderCreatedPayload{OrderID: "o-1"})
	assert.ErrorContains(t, err, "broker down")
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter(config.KafkaConfig{Brokers: []string{"k1:9092", "k2:9092"}, OrderTopic: "orders"})

	assert.Equal(t, "orders", w.Topic)
	assert.IsType(t, &kafka.CRC32Balancer{}, w.Balancer)
	assert.NotNil(t, w.Addr)
}
