package model

import "errors"

const (
	ErrCodeProductNotFound = "PRD001"
	ErrCodeImageNotFound   = "PRD002"
	ErrCodeProductInUse    = "PRD003"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrImageNotFound   = errors.New("image not found")
	// ErrProductInUse is returned when order items still reference the product.
	ErrProductInUse = errors.New("product is referenced by orders")
)
