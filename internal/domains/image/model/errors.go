package model

import "errors"

const (
	ErrCodeImageNotFound = "IMG001"
	ErrCodeNoFiles       = "IMG002"
	ErrCodeUploadFailed  = "IMG003"
)

var (
	ErrImageNotFound = errors.New("image not found")
	ErrNoFiles       = errors.New("no files in field \"images\"")
	// ErrUploadFailed is returned when every file of an upload was rejected.
	ErrUploadFailed = errors.New("no image could be stored")
)
