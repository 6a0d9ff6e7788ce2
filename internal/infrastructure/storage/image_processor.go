package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	DefaultMaxUploadSize = 2 * 1024 * 1024
	ThumbnailSize        = 300
)

var (
	ErrImageTooLarge   = errors.New("image exceeds the upload size limit")
	ErrUnsupportedType = errors.New("only jpeg and png images are allowed")
)

type ImageProcessor struct {
	MaxSize int64
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: DefaultMaxUploadSize}
}

// Inspect checks size and format and returns the decoded format name
// ("jpeg" or "png").
func (p *ImageProcessor) Inspect(data []byte) (string, error) {
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("%w (%d bytes max)", ErrImageTooLarge, p.MaxSize)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	if format != "jpeg" && format != "png" {
		return "", ErrUnsupportedType
	}
	return format, nil
}

// Thumbnail fits the image into a ThumbnailSize square and re-encodes it in
// its original format.
func (p *ImageProcessor) Thumbnail(data []byte, format string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	out := imaging.JPEG
	if format == "png" {
		out = imaging.PNG
	}

	resized := imaging.Fit(img, ThumbnailSize, ThumbnailSize, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, resized, out, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
