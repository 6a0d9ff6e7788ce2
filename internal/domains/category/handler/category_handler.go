package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/domains/category"
	"shop-backend/internal/shared/response"
	"shop-backend/internal/shared/utils"
	"shop-backend/pkg/logger"
)

type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(service category.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List GET /admin/categories?title=&page=&limit=
func (h *CategoryHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := &category.CategoryFilter{Title: c.Query("title"), Page: p.Page, Limit: p.Limit}

	categories, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, categories, &response.Meta{Page: p.Page, Limit: p.Limit, Total: total})
}

// Create POST /admin/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Show GET /admin/categories/:id
func (h *CategoryHandler) Show(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Update PUT /admin/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req category.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Delete DELETE /admin/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
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

func (h *CategoryHandler) handleError(c *gin.Context, err error) {
	var fieldErrs validation.Errors

	switch {
	case errors.As(err, &fieldErrs):
		response.ValidationError(c, err)
	case errors.Is(err, category.ErrCategoryNotFound):
		response.ErrorResponse(c, http.StatusNotFound, category.ErrCodeCategoryNotFound, err.Error())
	case errors.Is(err, category.ErrImageNotFound):
		response.ErrorResponse(c, http.StatusBadRequest, category.ErrCodeImageNotFound, err.Error())
	default:
		logger.Error("category request failed", err)
		response.InternalServerError(c, "internal server error")
	}
}
