package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/domains/order/service"
	"shop-backend/internal/shared/response"
	"shop-backend/internal/shared/utils"
)

// AdminHandler serves /admin/orders.
type AdminHandler struct {
	service service.OrderService
}

func NewAdminHandler(service service.OrderService) *AdminHandler {
	return &AdminHandler{service: service}
}

func adminFilter(c *gin.Context, p utils.Pagination) *model.ListOrdersFilter {
	return &model.ListOrdersFilter{
		Status: model.Status(c.Query("status")),
		Search: c.Query("id"),
		Page:   p.Page,
		Limit:  p.Limit,
	}
}

// List GET /admin/orders?status=&id=
func (h *AdminHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := adminFilter(c, p)
	if filter.Status != "" && !filter.Status.IsValid() {
		handleServiceError(c, model.ErrInvalidStatus)
		return
	}

	orders, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, model.ToOrderResponses(orders),
		&response.Meta{Page: p.Page, Limit: p.Limit, Total: total})
}

// Create POST /admin/orders
func (h *AdminHandler) Create(c *gin.Context) {
	var req model.CreateOrderRequest
	if !bindValidated(c, &req) {
		return
	}

	order, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.ToOrderResponse(order))
}

// Show GET /admin/orders/:id
func (h *AdminHandler) Show(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.service.Get(c.Request.Context(), id, nil)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToOrderResponse(order))
}

// Update PUT /admin/orders/:id
func (h *AdminHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.UpdateOrderRequest
	if !bindValidated(c, &req) {
		return
	}

	order, err := h.service.Update(c.Request.Context(), id, nil, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToOrderResponse(order))
}

// Delete DELETE /admin/orders/:id
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.NoContent(c)
}

// ApplyDiscount POST /admin/orders/:id/discount
func (h *AdminHandler) ApplyDiscount(c *gin.Context) {
	applyDiscount(c, h.service, nil)
}

// RemoveDiscount DELETE /admin/orders/:id/discount
func (h *AdminHandler) RemoveDiscount(c *gin.Context) {
	removeDiscount(c, h.service, nil)
}

// Export GET /admin/orders/export?status=&id=
func (h *AdminHandler) Export(c *gin.Context) {
	filter := adminFilter(c, utils.Pagination{Page: 1, Limit: utils.MaxLimit})

	buf, err := h.service.Export(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := "orders_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
