package user

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordLength = 72

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterRequest struct {
	Name     string  `json:"name"`
	Surname  *string `json:"surname"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 80)),
		validation.Field(&r.Surname, validation.Length(0, 200)),
		validation.Field(&r.Email, validation.Required, is.Email, validation.Length(3, 254)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, maxPasswordLength)),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         *User  `json:"user"`
}

// CreateUserRequest is the admin variant of registration; it may pick the role.
type CreateUserRequest struct {
	Name     string     `json:"name"`
	Surname  *string    `json:"surname"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     Role       `json:"role"`
	ImageID  *uuid.UUID `json:"image_id"`
}

func (r *CreateUserRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	if r.Role == "" {
		r.Role = RoleClient
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 80)),
		validation.Field(&r.Surname, validation.Length(0, 200)),
		validation.Field(&r.Email, validation.Required, is.Email, validation.Length(3, 254)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, maxPasswordLength)),
		validation.Field(&r.Role, validation.In(RoleAdmin, RoleManager, RoleClient)),
	)
}

type UpdateUserRequest struct {
	Name     *string    `json:"name"`
	Surname  *string    `json:"surname"`
	Email    *string    `json:"email"`
	Password *string    `json:"password"`
	Role     *Role      `json:"role"`
	ImageID  *uuid.UUID `json:"image_id"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Email != nil {
		normalized := NormalizeEmail(*r.Email)
		r.Email = &normalized
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 80)),
		validation.Field(&r.Surname, validation.Length(0, 200)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(8, maxPasswordLength)),
		validation.Field(&r.Role, validation.NilOrNotEmpty, validation.In(RoleAdmin, RoleManager, RoleClient)),
	)
}

type ListUsersFilter struct {
	// Name matches name, surname or email.
	Name  string
	Page  int
	Limit int
}
