package model

import "errors"

const (
	ErrCodeOrderNotFound    = "ORD001"
	ErrCodeInvalidItems     = "ORD002"
	ErrCodeUnknownItem      = "ORD003"
	ErrCodeDiscountNotFound = "ORD004"
	ErrCodeInvalidStatus    = "ORD005"
	ErrCodeUnknownProduct   = "ORD006"
	ErrCodeCouponNotFound   = "ORD007"
	ErrCodeUnknownUser      = "ORD008"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidItems     = errors.New("items must be a JSON array")
	ErrUnknownItem      = errors.New("item does not belong to this order")
	ErrDuplicateItem    = errors.New("item listed more than once")
	ErrDiscountNotFound = errors.New("discount not found")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrUnknownProduct   = errors.New("product does not exist")
	ErrUnknownUser      = errors.New("user does not exist")
)
