package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/domains/product/model"
	"shop-backend/internal/domains/product/service"
	"shop-backend/internal/shared/response"
	"shop-backend/internal/shared/utils"
	"shop-backend/pkg/logger"
)

// Handler serves both the storefront catalogue (List, Show) and the admin
// write endpoints.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// List GET /products?name=&page=&limit=
func (h *Handler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := &model.ListProductsFilter{Name: c.Query("name"), Page: p.Page, Limit: p.Limit}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, page.Items, &response.Meta{Page: p.Page, Limit: p.Limit, Total: page.Total})
}

// Show GET /products/:id
func (h *Handler) Show(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, product)
}

// Create POST /admin/products
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	product, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, product)
}

// Update PUT /admin/products/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, product)
}

// Delete DELETE /admin/products/:id
func (h *Handler) Delete(c *gin.Context) {
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

func (h *Handler) handleError(c *gin.Context, err error) {
	var fieldErrs validation.Errors

	switch {
	case errors.As(err, &fieldErrs):
		response.ValidationError(c, err)
	case errors.Is(err, model.ErrProductNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeProductNotFound, err.Error())
	case errors.Is(err, model.ErrImageNotFound):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeImageNotFound, err.Error())
	case errors.Is(err, model.ErrProductInUse):
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeProductInUse, err.Error())
	default:
		logger.Error("product request failed", err)
		response.InternalServerError(c, "internal server error")
	}
}
