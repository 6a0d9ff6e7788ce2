package main

import (
	"github.com/hibiken/asynq"

	dashboardJob "shop-backend/internal/domains/dashboard/job"
	orderJob "shop-backend/internal/domains/order/job"
	"shop-backend/internal/shared"
	"shop-backend/pkg/container"
)

// HandlerRegistry holds every task handler the worker serves.
type HandlerRegistry struct {
	orderCreated     *orderJob.OrderCreatedHandler
	dashboardRefresh *dashboardJob.RefreshHandler
}

func initializeHandlers(c *container.Container, publisher orderJob.EventPublisher) *HandlerRegistry {
	return &HandlerRegistry{
		orderCreated:     orderJob.NewOrderCreatedHandler(publisher),
		dashboardRefresh: dashboardJob.NewRefreshHandler(c.DashboardService),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeOrderCreated, h.orderCreated.ProcessTask)
	mux.HandleFunc(shared.TypeDashboardRefresh, h.dashboardRefresh.ProcessTask)
}
