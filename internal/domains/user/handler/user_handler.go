package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/domains/user"
	"shop-backend/internal/shared/response"
	"shop-backend/internal/shared/utils"
)

// UserHandler serves /admin/users.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// List GET /admin/users?name=&page=&limit=
func (h *UserHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	filter := &user.ListUsersFilter{Name: c.Query("name"), Page: p.Page, Limit: p.Limit}

	users, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, users, &response.Meta{Page: p.Page, Limit: p.Limit, Total: total})
}

// Create POST /admin/users
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserRequest
	if !bind(c, &req) {
		return
	}

	u, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// Show GET /admin/users/:id
func (h *UserHandler) Show(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// Update PUT /admin/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req user.UpdateUserRequest
	if !bind(c, &req) {
		return
	}

	u, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// Delete DELETE /admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}
