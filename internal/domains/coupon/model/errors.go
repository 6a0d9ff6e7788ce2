package model

import "errors"

const (
	ErrCodeCouponNotFound   = "CPN001"
	ErrCodeCouponCodeTaken  = "CPN002"
	ErrCodeUnknownReference = "CPN003"
	ErrCodeInvalidWindow    = "CPN004"
)

var (
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponCodeTaken  = errors.New("coupon code already exists")
	ErrUnknownReference = errors.New("coupon references an unknown user or product")
	ErrInvalidWindow    = errors.New("valid_from must be before valid_until")
)
