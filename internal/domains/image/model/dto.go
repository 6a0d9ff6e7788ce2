package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type RenameImageRequest struct {
	OriginalName string `json:"original_name"`
}

func (r *RenameImageRequest) Validate() error {
	r.OriginalName = strings.TrimSpace(r.OriginalName)
	return validation.ValidateStruct(r,
		validation.Field(&r.OriginalName, validation.Required, validation.Length(1, 255)),
	)
}
