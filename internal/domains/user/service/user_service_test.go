package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shop-backend/internal/domains/user"
	"shop-backend/pkg/jwt"
)

type memRepo struct {
	byID map[uuid.UUID]*user.User
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[uuid.UUID]*user.User{}}
}

func (m *memRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range m.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailAlreadyExists
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *memRepo) List(_ context.Context, _ *user.ListUsersFilter) ([]*user.User, int, error) {
	return nil, len(m.byID), nil
}

func (m *memRepo) Update(_ context.Context, u *user.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

func newTestService(repo user.Repository) (*userService, *jwt.Manager) {
	tokens := jwt.NewManager("test-secret", time.Minute, time.Hour)
	svc := NewUserService(repo, tokens).(*userService)
	svc.hashCost = bcrypt.MinCost
	return svc, tokens
}

func TestNewUserService_UsesProductionCost(t *testing.T) {
	svc := NewUserService(newMemRepo(), jwt.NewManager("s", time.Minute, time.Hour)).(*userService)
	assert.Equal(t, 12, svc.hashCost)
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newTestService(newMemRepo())

	req := &user.RegisterRequest{Name: "Ana", Email: "Ana@Example.com", Password: "s3cret-pass"}
	require.NoError(t, req.Validate())

	u, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, user.RoleClient, u.Role)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)

	res, err := svc.Login(ctx, &user.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err := tokens.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, "client", claims.Role)

	_, err = svc.Login(ctx, &user.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &user.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUserService_RefreshPicksUpRoleChange(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc, tokens := newTestService(repo)

	u, err := svc.Create(ctx, &user.CreateUserRequest{Name: "Bo", Email: "bo@example.com", Password: "password1", Role: user.RoleClient})
	require.NoError(t, err)
	login, err := svc.Login(ctx, &user.LoginRequest{Email: "bo@example.com", Password: "password1"})
	require.NoError(t, err)

	manager := user.RoleManager
	_, err = svc.Update(ctx, u.ID, &user.UpdateUserRequest{Role: &manager})
	require.NoError(t, err)

	res, err := svc.Refresh(ctx, &user.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	claims, err := tokens.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "manager", claims.Role)

	_, err = svc.Refresh(ctx, &user.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, user.ErrInvalidToken)

	require.NoError(t, svc.Delete(ctx, u.ID))
	_, err = svc.Refresh(ctx, &user.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestUserService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(newMemRepo())

	u, err := svc.Create(ctx, &user.CreateUserRequest{Name: "Cy", Email: "cy@example.com", Password: "password1", Role: user.RoleAdmin})
	require.NoError(t, err)

	pw := "password2"
	_, err = svc.Update(ctx, u.ID, &user.UpdateUserRequest{Password: &pw})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &user.LoginRequest{Email: "cy@example.com", Password: "password1"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &user.LoginRequest{Email: "cy@example.com", Password: "password2"})
	assert.NoError(t, err)
}

func TestRequests_Validate(t *testing.T) {
	badRole := user.Role("root")
	short := "short"

	tests := []struct {
		name    string
		req     interface{ Validate() error }
		wantErr bool
	}{
		{name: "register ok", req: &user.RegisterRequest{Name: "A", Email: "a@b.co", Password: "12345678"}},
		{name: "register bad email", req: &user.RegisterRequest{Name: "A", Email: "nope", Password: "12345678"}, wantErr: true},
		{name: "register short password", req: &user.RegisterRequest{Name: "A", Email: "a@b.co", Password: "123"}, wantErr: true},
		{name: "create defaults role", req: &user.CreateUserRequest{Name: "A", Email: "a@b.co", Password: "12345678"}},
		{name: "update bad role", req: &user.UpdateUserRequest{Role: &badRole}, wantErr: true},
		{name: "update short password", req: &user.UpdateUserRequest{Password: &short}, wantErr: true},
		{name: "update empty", req: &user.UpdateUserRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
