package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/domains/order/service"
	"shop-backend/internal/shared/middleware"
	"shop-backend/internal/shared/response"
	"shop-backend/internal/shared/utils"
)

// ClientHandler serves /orders for the authenticated user. Every lookup is
// scoped to the caller, so another user's order reads as not found.
type ClientHandler struct {
	service service.OrderService
}

func NewClientHandler(service service.OrderService) *ClientHandler {
	return &ClientHandler{service: service}
}

func callerScope(c *gin.Context) (*uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return nil, false
	}
	return &userID, true
}

// List GET /orders?number=
func (h *ClientHandler) List(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}

	p := utils.ParsePagination(c)
	filter := &model.ListOrdersFilter{UserID: scope, Search: c.Query("number"), Page: p.Page, Limit: p.Limit}

	orders, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, model.ToOrderResponses(orders),
		&response.Meta{Page: p.Page, Limit: p.Limit, Total: total})
}

// Create POST /orders
func (h *ClientHandler) Create(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req.UserID = *scope
	req.Status = model.StatusPending
	req.UseCurrentPrices = true

	order, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.ToOrderResponse(order))
}

// Show GET /orders/:id
func (h *ClientHandler) Show(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.Get(c.Request.Context(), id, scope)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToOrderResponse(order))
}

// Update PUT /orders/:id. Clients may reconcile items and cancel, nothing
// else.
func (h *ClientHandler) Update(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.UpdateOrderRequest
	if !bindValidated(c, &req) {
		return
	}
	if req.Status != nil && *req.Status != model.StatusCancelled {
		handleServiceError(c, model.ErrInvalidStatus)
		return
	}
	req.UseCurrentPrices = true

	order, err := h.service.Update(c.Request.Context(), id, scope, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToOrderResponse(order))
}

// ApplyDiscount POST /orders/:id/discount
func (h *ClientHandler) ApplyDiscount(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}
	applyDiscount(c, h.service, scope)
}

// RemoveDiscount DELETE /orders/:id/discount
func (h *ClientHandler) RemoveDiscount(c *gin.Context) {
	scope, ok := callerScope(c)
	if !ok {
		return
	}
	removeDiscount(c, h.service, scope)
}

func applyDiscount(c *gin.Context, svc service.OrderService, scope *uuid.UUID) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.ApplyDiscountRequest
	if !bindValidated(c, &req) {
		return
	}

	result, err := svc.ApplyDiscount(c.Request.Context(), id, scope, req.Code)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToApplyDiscountResponse(result))
}

func removeDiscount(c *gin.Context, svc service.OrderService, scope *uuid.UUID) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.RemoveDiscountRequest
	if !bindValidated(c, &req) {
		return
	}

	order, err := svc.RemoveDiscount(c.Request.Context(), id, scope, req.DiscountID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToOrderResponse(order))
}
