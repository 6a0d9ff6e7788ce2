package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shop-backend/internal/domains/user"
	"shop-backend/internal/shared/middleware"
)

type stubService struct {
	u   *user.User
	err error
}

func (s *stubService) Register(context.Context, *user.RegisterRequest) (*user.User, error) {
	return s.u, s.err
}

func (s *stubService) Login(context.Context, *user.LoginRequest) (*user.AuthResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &user.AuthResponse{AccessToken: "a", RefreshToken: "r", User: s.u}, nil
}

func (s *stubService) Refresh(context.Context, *user.RefreshTokenRequest) (*user.AuthResponse, error) {
	return nil, s.err
}

func (s *stubService) Create(context.Context, *user.CreateUserRequest) (*user.User, error) {
	return s.u, s.err
}

func (s *stubService) GetByID(context.Context, uuid.UUID) (*user.User, error) {
	return s.u, s.err
}

func (s *stubService) List(context.Context, *user.ListUsersFilter) ([]*user.User, int, error) {
	return nil, 0, s.err
}

func (s *stubService) Update(context.Context, uuid.UUID, *user.UpdateUserRequest) (*user.User, error) {
	return s.u, s.err
}

func (s *stubService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func newRouter(svc user.Service, caller *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuthHandler(svc)
	admin := NewUserHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if caller != nil {
			c.Set(middleware.ContextUserID, *caller)
		}
	})
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/refresh", auth.Refresh)
	r.GET("/me", auth.Me)
	r.POST("/admin/users", admin.Create)
	r.DELETE("/admin/users/:id", admin.Delete)
	return r
}

func TestHandlers(t *testing.T) {
	me := uuid.New()
	u := &user.User{ID: me, Name: "Ana", Email: "ana@example.com", PasswordHash: "secret-hash"}

	tests := []struct {
		name     string
		svc      *stubService
		caller   *uuid.UUID
		method   string
		path     string
		body     string
		wantCode int
	}{
		{name: "register", svc: &stubService{u: u}, method: http.MethodPost, path: "/auth/register", body: `{"name":"Ana","email":"ana@example.com","password":"password1"}`, wantCode: http.StatusCreated},
		{name: "register duplicate", svc: &stubService{err: user.ErrEmailAlreadyExists}, method: http.MethodPost, path: "/auth/register", body: `{"name":"Ana","email":"ana@example.com","password":"password1"}`, wantCode: http.StatusConflict},
		{name: "register invalid", svc: &stubService{}, method: http.MethodPost, path: "/auth/register", body: `{"name":"Ana","email":"x","password":"1"}`, wantCode: http.StatusBadRequest},
		{name: "login bad credentials", svc: &stubService{err: user.ErrInvalidCredentials}, method: http.MethodPost, path: "/auth/login", body: `{"email":"ana@example.com","password":"x"}`, wantCode: http.StatusUnauthorized},
		{name: "refresh invalid", svc: &stubService{err: user.ErrInvalidToken}, method: http.MethodPost, path: "/auth/refresh", body: `{"refresh_token":"junk"}`, wantCode: http.StatusUnauthorized},
		{name: "me", svc: &stubService{u: u}, caller: &me, method: http.MethodGet, path: "/me", wantCode: http.StatusOK},
		{name: "me unauthenticated", svc: &stubService{u: u}, method: http.MethodGet, path: "/me", wantCode: http.StatusUnauthorized},
		{name: "admin create unknown image", svc: &stubService{err: user.ErrImageNotFound}, method: http.MethodPost, path: "/admin/users", body: `{"name":"B","email":"b@example.com","password":"password1"}`, wantCode: http.StatusBadRequest},
		{name: "admin delete missing", svc: &stubService{err: user.ErrUserNotFound}, method: http.MethodDelete, path: "/admin/users/" + uuid.NewString(), wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			newRouter(tt.svc, tt.caller).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.NotContains(t, w.Body.String(), "secret-hash")
		})
	}
}
