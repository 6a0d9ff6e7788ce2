package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/image/model"
)

type stubService struct {
	gotFiles []model.UploadFile
	err      error
}

func (s *stubService) Upload(_ context.Context, files []model.UploadFile) (*model.UploadResult, error) {
	s.gotFiles = files
	if s.err != nil {
		return nil, s.err
	}
	result := &model.UploadResult{Errors: map[string]string{}}
	for range files {
		result.Successes = append(result.Successes, &model.ImageResponse{ID: uuid.New()})
	}
	return result, nil
}

func (s *stubService) Get(context.Context, uuid.UUID) (*model.ImageResponse, error) {
	return nil, s.err
}

func (s *stubService) List(context.Context, *model.ListImagesFilter) ([]*model.ImageResponse, int, error) {
	return nil, 0, s.err
}

func (s *stubService) Rename(context.Context, uuid.UUID, *model.RenameImageRequest) (*model.ImageResponse, error) {
	return nil, s.err
}

func (s *stubService) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func multipartBody(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	for name, data := range files {
		part, err := w.CreateFormFile(formField, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestAdminHandler_Upload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubService{}
	h := NewAdminHandler(svc)
	h.maxSize = 8
	r := gin.New()
	r.POST("/images", h.Upload)

	body, contentType := multipartBody(t, map[string][]byte{
		"small.png": []byte("tiny"),
		"big.png":   []byte("far too large"),
	})
	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.gotFiles, 1)
	assert.Equal(t, "small.png", svc.gotFiles[0].Name)
	assert.Contains(t, w.Body.String(), "big.png")
}

func TestAdminHandler_Errors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New().String()

	tests := []struct {
		name     string
		err      error
		method   string
		path     string
		body     string
		wantCode int
	}{
		{name: "show missing", err: model.ErrImageNotFound, method: http.MethodGet, path: "/images/" + id, wantCode: http.StatusNotFound},
		{name: "rename blank", method: http.MethodPut, path: "/images/" + id, body: `{"original_name":" "}`, wantCode: http.StatusBadRequest},
		{name: "delete", method: http.MethodDelete, path: "/images/" + id, wantCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAdminHandler(&stubService{err: tt.err})
			r := gin.New()
			r.GET("/images/:id", h.Show)
			r.PUT("/images/:id", h.Update)
			r.DELETE("/images/:id", h.Delete)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
