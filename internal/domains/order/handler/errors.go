package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	couponModel "shop-backend/internal/domains/coupon/model"
	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/shared/response"
	"shop-backend/pkg/logger"
)

func handleServiceError(c *gin.Context, err error) {
	var fieldErrs validation.Errors

	switch {
	case errors.As(err, &fieldErrs):
		response.ValidationError(c, err)
	case errors.Is(err, model.ErrInvalidItems):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidItems, err.Error())
	case errors.Is(err, model.ErrUnknownItem), errors.Is(err, model.ErrDuplicateItem):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeUnknownItem, err.Error())
	case errors.Is(err, model.ErrUnknownProduct):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeUnknownProduct, err.Error())
	case errors.Is(err, model.ErrUnknownUser):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeUnknownUser, err.Error())
	case errors.Is(err, model.ErrInvalidStatus):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidStatus, err.Error())
	case errors.Is(err, model.ErrOrderNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeOrderNotFound, err.Error())
	case errors.Is(err, model.ErrDiscountNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeDiscountNotFound, err.Error())
	case errors.Is(err, couponModel.ErrCouponNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeCouponNotFound, err.Error())
	default:
		logger.Error("order request failed", err)
		response.InternalServerError(c, "internal server error")
	}
}

// bindValidated binds the JSON body into req and runs its Validate.
func bindValidated(c *gin.Context, req interface{ Validate() error }) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		handleServiceError(c, err)
		return false
	}
	return true
}
