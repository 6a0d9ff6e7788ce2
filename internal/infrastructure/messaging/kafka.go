package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"shop-backend/internal/config"
	"shop-backend/internal/shared"
)

// EventNewOrder is the event name consumers subscribe to.
const EventNewOrder = "new:order"

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event is the JSON envelope written to the topic.
type Event struct {
	Event      string      `json:"event"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

type OrderEventPublisher struct {
	writer MessageWriter
	now    func() time.Time
}

// NewKafkaWriter keys messages with the CRC32 balancer so events for one
// order always land on the same partition.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.OrderTopic,
		Balancer:               &kafka.CRC32Balancer{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
}

func NewOrderEventPublisher(writer MessageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer, now: time.Now}
}

func (p *OrderEventPublisher) PublishNewOrder(ctx context.Context, order shared.OrderCreatedPayload) error {
	value, err := json.Marshal(Event{Event: EventNewOrder, OccurredAt: p.now().UTC(), Data: order})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", EventNewOrder, err)
	}

	msg := kafka.Message{
		Key:     []byte(order.OrderID),
		Value:   value,
		Headers: []kafka.Header{{Key: "event", Value: []byte(EventNewOrder)}},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", EventNewOrder, err)
	}
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}
