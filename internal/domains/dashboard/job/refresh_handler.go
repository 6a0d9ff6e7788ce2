package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/domains/dashboard/service"
)

// RefreshHandler processes dashboard:refresh tasks enqueued by the scheduler.
type RefreshHandler struct {
	service service.ServiceInterface
}

func NewRefreshHandler(service service.ServiceInterface) *RefreshHandler {
	return &RefreshHandler{service: service}
}

func (h *RefreshHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	stats, err := h.service.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Str("task", task.Type()).Msg("Failed to refresh dashboard stats")
		return fmt.Errorf("refresh dashboard: %w", err)
	}

	log.Info().
		Int64("users", stats.Users).
		Int64("orders", stats.Orders).
		Str("revenues", stats.Revenues.String()).
		Msg("Dashboard stats refreshed")
	return nil
}
