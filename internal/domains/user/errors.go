package user

import "errors"

const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeEmailTaken         = "USR002"
	ErrCodeImageNotFound      = "USR003"
	ErrCodeInvalidCredentials = "AUTH001"
	ErrCodeInvalidToken       = "AUTH002"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrImageNotFound      = errors.New("image not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
