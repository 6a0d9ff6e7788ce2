package category

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	ImageID     *uuid.UUID `json:"image_id"`
}

func (r *CreateCategoryRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(0, 255)),
	)
}

// UpdateCategoryRequest is a partial update; nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ImageID     *uuid.UUID `json:"image_id"`
}

func (r *UpdateCategoryRequest) Validate() error {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		r.Title = &trimmed
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 255)),
	)
}

func (r *UpdateCategoryRequest) Apply(c *Category) {
	if r.Title != nil {
		c.Title = *r.Title
	}
	if r.Description != nil {
		c.Description = r.Description
	}
	if r.ImageID != nil {
		c.ImageID = r.ImageID
	}
}

type CategoryFilter struct {
	Title string
	Page  int
	Limit int
}
