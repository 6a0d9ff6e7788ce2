package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/domains/image/model"
	"shop-backend/internal/domains/image/service"
	"shop-backend/internal/infrastructure/storage"
	"shop-backend/internal/shared/response"
	"shop-backend/internal/shared/utils"
	"shop-backend/pkg/logger"
)

const formField = "images"

// AdminHandler serves /admin/images.
type AdminHandler struct {
	service service.ServiceInterface
	maxSize int64
}

func NewAdminHandler(service service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: service, maxSize: storage.DefaultMaxUploadSize}
}

// List GET /admin/images?page=&limit=
func (h *AdminHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	images, total, err := h.service.List(c.Request.Context(), &model.ListImagesFilter{Page: p.Page, Limit: p.Limit})
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, images, &response.Meta{Page: p.Page, Limit: p.Limit, Total: total})
}

// Upload POST /admin/images (multipart, field "images", one or many files)
func (h *AdminHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "invalid multipart form")
		return
	}

	var files []model.UploadFile
	rejected := map[string]string{}
	for _, fh := range form.File[formField] {
		if fh.Size > h.maxSize {
			rejected[fh.Filename] = fmt.Sprintf("file exceeds %d bytes", h.maxSize)
			continue
		}

		f, err := fh.Open()
		if err != nil {
			rejected[fh.Filename] = "cannot read file"
			continue
		}
		data, err := io.ReadAll(io.LimitReader(f, h.maxSize+1))
		f.Close()
		if err != nil {
			rejected[fh.Filename] = "cannot read file"
			continue
		}
		files = append(files, model.UploadFile{Name: fh.Filename, Data: data})
	}

	if len(files) == 0 && len(rejected) > 0 {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeUploadFailed, model.ErrUploadFailed.Error(), rejected)
		return
	}

	result, err := h.service.Upload(c.Request.Context(), files)
	if result != nil {
		for name, msg := range rejected {
			result.Errors[name] = msg
		}
	}
	if err != nil {
		if errors.Is(err, model.ErrUploadFailed) && result != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeUploadFailed, err.Error(), result.Errors)
			return
		}
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Show GET /admin/images/:id
func (h *AdminHandler) Show(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	img, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, img)
}

// Update PUT /admin/images/:id renames original_name.
func (h *AdminHandler) Update(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.RenameImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	img, err := h.service.Rename(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, img)
}

// Delete DELETE /admin/images/:id
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
	case errors.Is(err, model.ErrImageNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeImageNotFound, err.Error())
	case errors.Is(err, model.ErrNoFiles):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeNoFiles, err.Error())
	default:
		logger.Error("image request failed", err)
		response.InternalServerError(c, "internal server error")
	}
}
