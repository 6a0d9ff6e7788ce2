package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/domains/coupon/model"
	"shop-backend/internal/domains/coupon/service"
	"shop-backend/internal/shared/response"
	"shop-backend/internal/shared/utils"
	"shop-backend/pkg/logger"
)

// AdminHandler serves /admin/coupons.
type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(service service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// List GET /admin/coupons?code=&page=&limit=
func (h *AdminHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := &model.ListCouponsFilter{Code: c.Query("code"), Page: p.Page, Limit: p.Limit}

	coupons, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, coupons, &response.Meta{Page: p.Page, Limit: p.Limit, Total: total})
}

// Create POST /admin/coupons
func (h *AdminHandler) Create(c *gin.Context) {
	var req model.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	coupon, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, coupon)
}

// Show GET /admin/coupons/:id
func (h *AdminHandler) Show(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	coupon, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, coupon)
}

// Update PUT /admin/coupons/:id
func (h *AdminHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	coupon, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, coupon)
}

// Delete DELETE /admin/coupons/:id
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *AdminHandler) handleError(c *gin.Context, err error) {
	var fieldErrs validation.Errors

	switch {
	case errors.As(err, &fieldErrs):
		response.ValidationError(c, err)
	case errors.Is(err, model.ErrCouponNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeCouponNotFound, err.Error())
	case errors.Is(err, model.ErrCouponCodeTaken):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeCouponCodeTaken, err.Error())
	case errors.Is(err, model.ErrUnknownReference):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeUnknownReference, err.Error())
	case errors.Is(err, model.ErrInvalidWindow):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidWindow, err.Error())
	default:
		logger.Error("coupon request failed", err)
		response.InternalServerError(c, "internal server error")
	}
}
