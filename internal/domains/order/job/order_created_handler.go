package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/shared"
)

// EventPublisher forwards order events to downstream consumers.
type EventPublisher interface {
	PublishNewOrder(ctx context.Context, order shared.OrderCreatedPayload) error
}

// OrderCreatedHandler turns order:created tasks into "new:order" events.
type OrderCreatedHandler struct {
	publisher EventPublisher
}

func NewOrderCreatedHandler(publisher EventPublisher) *OrderCreatedHandler {
	return &OrderCreatedHandler{publisher: publisher}
}

func (h *OrderCreatedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.OrderCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal order created payload")
		// A malformed payload never succeeds on retry.
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.publisher.PublishNewOrder(ctx, payload); err != nil {
		log.Error().
			Err(err).
			Str("order_id", payload.OrderID).
			Msg("Failed to publish new order event")
		return fmt.Errorf("publish new order: %w", err)
	}

	log.Info().
		Str("order_id", payload.OrderID).
		Int64("number", payload.Number).
		Msg("New order event published")
	return nil
}
