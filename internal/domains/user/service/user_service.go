package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shop-backend/internal/domains/user"
	"shop-backend/pkg/jwt"
	"shop-backend/pkg/logger"
)

const passwordCost = 12

type userService struct {
	repo     user.Repository
	tokens   *jwt.Manager
	hashCost int
}

func NewUserService(repo user.Repository, tokens *jwt.Manager) user.Service {
	return &userService{repo: repo, tokens: tokens, hashCost: passwordCost}
}

// Register always creates a client account.
func (s *userService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.RoleClient,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("user registered", map[string]interface{}{"user_id": u.ID})
	return u, nil
}

func (s *userService) Login(ctx context.Context, req *user.LoginRequest) (*user.AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("login failed", map[string]interface{}{"user_id": u.ID})
		return nil, user.ErrInvalidCredentials
	}

	return s.issue(u)
}

// Refresh reloads the user so a changed role lands in the new access token.
func (s *userService) Refresh(ctx context.Context, req *user.RefreshTokenRequest) (*user.AuthResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidToken
		}
		return nil, err
	}

	return s.issue(u)
}

func (s *userService) Create(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		ImageID:      req.ImageID,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) List(ctx context.Context, filter *user.ListUsersFilter) ([]*user.User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req *user.UpdateUserRequest) (*user.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Surname != nil {
		u.Surname = req.Surname
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.ImageID != nil {
		u.ImageID = req.ImageID
	}
	if req.Password != nil {
		if u.PasswordHash, err = s.hash(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("user deleted", map[string]interface{}{"user_id": id})
	return nil
}

func (s *userService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (s *userService) issue(u *user.User) (*user.AuthResponse, error) {
	pair, err := s.tokens.GeneratePair(u.ID.String(), u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &user.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		User:         u,
	}, nil
}
