package model

import (
	"time"

	"github.com/google/uuid"
)

// Image is an uploaded picture. Path and Thumbnail are object keys in the
// storage bucket.
type Image struct {
	ID           uuid.UUID
	Path         string
	Thumbnail    *string
	Size         int64
	OriginalName string
	Extension    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ImageResponse struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Size         int64     `json:"size"`
	OriginalName string    `json:"original_name"`
	Extension    string    `json:"extension"`
	CreatedAt    time.Time `json:"created_at"`
}

// UploadFile is one file taken from the multipart form.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadResult reports per-file outcomes; one bad file does not fail the batch.
type UploadResult struct {
	Successes []*ImageResponse  `json:"successes"`
	Errors    map[string]string `json:"errors"`
}

type ListImagesFilter struct {
	Page  int
	Limit int
}
