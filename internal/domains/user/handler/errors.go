package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"shop-backend/internal/domains/user"
	"shop-backend/internal/shared/response"
	"shop-backend/pkg/logger"
)

func handleError(c *gin.Context, err error) {
	var fieldErrs validation.Errors

	switch {
	case errors.As(err, &fieldErrs):
		response.ValidationError(c, err)
	case errors.Is(err, user.ErrInvalidCredentials):
		response.ErrorResponse(c, http.StatusUnauthorized, user.ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, user.ErrInvalidToken):
		response.ErrorResponse(c, http.StatusUnauthorized, user.ErrCodeInvalidToken, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		response.ErrorResponse(c, http.StatusNotFound, user.ErrCodeUserNotFound, err.Error())
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.ErrorResponse(c, http.StatusConflict, user.ErrCodeEmailTaken, err.Error())
	case errors.Is(err, user.ErrImageNotFound):
		response.ErrorResponse(c, http.StatusBadRequest, user.ErrCodeImageNotFound, err.Error())
	default:
		logger.Error("user request failed", err)
		response.InternalServerError(c, "internal server error")
	}
}

type validatable interface {
	Validate() error
}

// bind decodes the JSON body into req and validates it, writing the error
// response itself. It reports whether the handler may continue.
func bind(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		handleError(c, err)
		return false
	}
	return true
}
