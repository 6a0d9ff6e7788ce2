package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/category"
	"shop-backend/internal/shared/response"
)

type stubService struct {
	item *category.Category
	err  error
}

func (s *stubService) Create(context.Context, *category.CreateCategoryRequest) (*category.Category, error) {
	return s.item, s.err
}

func (s *stubService) GetByID(context.Context, uuid.UUID) (*category.Category, error) {
	return s.item, s.err
}

func (s *stubService) List(context.Context, *category.CategoryFilter) ([]*category.Category, int, error) {
	if s.item == nil {
		return nil, 0, s.err
	}
	return []*category.Category{s.item}, 1, s.err
}

func (s *stubService) Update(context.Context, uuid.UUID, *category.UpdateCategoryRequest) (*category.Category, error) {
	return s.item, s.err
}

func (s *stubService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func newRouter(svc category.CategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCategoryHandler(svc)
	r := gin.New()
	r.GET("/categories", h.List)
	r.POST("/categories", h.Create)
	r.GET("/categories/:id", h.Show)
	r.PUT("/categories/:id", h.Update)
	r.DELETE("/categories/:id", h.Delete)
	return r
}

func TestCategoryHandler(t *testing.T) {
	item := &category.Category{ID: uuid.New(), Title: "Shoes"}

	tests := []struct {
		name     string
		svc      *stubService
		method   string
		path     string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "list", svc: &stubService{item: item}, method: http.MethodGet, path: "/categories?title=sh", wantCode: http.StatusOK},
		{name: "create", svc: &stubService{item: item}, method: http.MethodPost, path: "/categories", body: `{"title":"Shoes"}`, wantCode: http.StatusCreated},
		{name: "create blank title", svc: &stubService{}, method: http.MethodPost, path: "/categories", body: `{"title":""}`, wantCode: http.StatusBadRequest, wantErr: "VALIDATION_FAILED"},
		{name: "create unknown image", svc: &stubService{err: category.ErrImageNotFound}, method: http.MethodPost, path: "/categories", body: `{"title":"x"}`, wantCode: http.StatusBadRequest, wantErr: category.ErrCodeImageNotFound},
		{name: "show bad id", svc: &stubService{}, method: http.MethodGet, path: "/categories/nope", wantCode: http.StatusBadRequest},
		{name: "show missing", svc: &stubService{err: category.ErrCategoryNotFound}, method: http.MethodGet, path: "/categories/" + item.ID.String(), wantCode: http.StatusNotFound, wantErr: category.ErrCodeCategoryNotFound},
		{name: "update", svc: &stubService{item: item}, method: http.MethodPut, path: "/categories/" + item.ID.String(), body: `{"title":"Boots"}`, wantCode: http.StatusOK},
		{name: "delete", svc: &stubService{}, method: http.MethodDelete, path: "/categories/" + item.ID.String(), wantCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			newRouter(tt.svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				var body response.Response
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				require.NotNil(t, body.Error)
				assert.Equal(t, tt.wantErr, body.Error.Code)
			}
		})
	}
}
