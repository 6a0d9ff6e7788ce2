package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/dashboard/service"
	"shop-backend/internal/shared/response"
	"shop-backend/pkg/logger"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Show GET /admin/dashboard
func (h *Handler) Show(c *gin.Context) {
	stats, err := h.service.Get(c.Request.Context())
	if err != nil {
		logger.Error("dashboard stats failed", err)
		response.InternalServerError(c, "could not load dashboard stats")
		return
	}
	response.Success(c, http.StatusOK, stats)
}
