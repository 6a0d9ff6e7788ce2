package category

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products in the admin catalogue.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	ImageID     *uuid.UUID `json:"image_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
