package category

import "errors"

const (
	ErrCodeCategoryNotFound = "CAT001"
	ErrCodeImageNotFound    = "CAT002"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	// ErrImageNotFound is returned when image_id references no image.
	ErrImageNotFound = errors.New("image not found")
)
