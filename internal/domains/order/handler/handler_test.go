package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/shared/middleware"
	"shop-backend/internal/shared/response"
)

type stubService struct {
	order     *model.Order
	result    *model.ApplyDiscountResult
	err       error
	gotScope  *uuid.UUID
	gotCreate *model.CreateOrderRequest
}

func (s *stubService) Create(_ context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	s.gotCreate = req
	return s.order, s.err
}

func (s *stubService) Update(_ context.Context, _ uuid.UUID, scope *uuid.UUID, _ *model.UpdateOrderRequest) (*model.Order, error) {
	s.gotScope = scope
	return s.order, s.err
}

func (s *stubService) Get(_ context.Context, _ uuid.UUID, scope *uuid.UUID) (*model.Order, error) {
	s.gotScope = scope
	return s.order, s.err
}

func (s *stubService) List(context.Context, *model.ListOrdersFilter) ([]*model.Order, int, error) {
	return nil, 0, s.err
}

func (s *stubService) Delete(context.Context, uuid.UUID) error { return s.err }

func (s *stubService) ReconcileItems(context.Context, pgx.Tx, *model.Order, []model.ItemInput) error {
	return s.err
}

func (s *stubService) ApplyDiscount(_ context.Context, _ uuid.UUID, scope *uuid.UUID, _ string) (*model.ApplyDiscountResult, error) {
	s.gotScope = scope
	return s.result, s.err
}

func (s *stubService) RemoveDiscount(_ context.Context, _ uuid.UUID, scope *uuid.UUID, _ uuid.UUID) (*model.Order, error) {
	s.gotScope = scope
	return s.order, s.err
}

func (s *stubService) Export(context.Context, *model.ListOrdersFilter) (*bytes.Buffer, error) {
	return bytes.NewBufferString("PK"), s.err
}

func clientRouter(svc *stubService, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if userID != nil {
		r.Use(func(c *gin.Context) { c.Set(middleware.ContextUserID, *userID) })
	}
	h := NewClientHandler(svc)
	r.POST("/orders", h.Create)
	r.GET("/orders/:id", h.Show)
	r.PUT("/orders/:id", h.Update)
	r.POST("/orders/:id/discount", h.ApplyDiscount)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func sampleOrder() *model.Order {
	return &model.Order{ID: uuid.New(), Number: 1, Status: model.StatusPending, Total: decimal.NewFromInt(10)}
}

func TestClientHandler_RequiresCaller(t *testing.T) {
	w := do(clientRouter(&stubService{}, nil), http.MethodGet, "/orders/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientHandler_CreateForcesOwnerAndPricing(t *testing.T) {
	user := uuid.New()
	svc := &stubService{order: sampleOrder()}

	w := do(clientRouter(svc, &user), http.MethodPost, "/orders",
		`{"user_id":"`+uuid.NewString()+`","status":"completed","items":[]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, user, svc.gotCreate.UserID)
	assert.Equal(t, model.StatusPending, svc.gotCreate.Status)
	assert.True(t, svc.gotCreate.UseCurrentPrices)
}

func TestClientHandler_UpdateOnlyCancels(t *testing.T) {
	user := uuid.New()
	svc := &stubService{order: sampleOrder()}
	r := clientRouter(svc, &user)

	w := do(r, http.MethodPut, "/orders/"+uuid.NewString(), `{"status":"completed"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.ErrCodeInvalidStatus, errorCode(t, w))

	w = do(r, http.MethodPut, "/orders/"+uuid.NewString(), `{"status":"cancelled"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.gotScope)
	assert.Equal(t, user, *svc.gotScope)
}

func TestClientHandler_ErrorMapping(t *testing.T) {
	user := uuid.New()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "not found", err: model.ErrOrderNotFound, wantCode: http.StatusNotFound, wantErr: model.ErrCodeOrderNotFound},
		{name: "invalid items", err: model.ErrInvalidItems, wantCode: http.StatusBadRequest, wantErr: model.ErrCodeInvalidItems},
		{name: "unknown item", err: model.ErrUnknownItem, wantCode: http.StatusBadRequest, wantErr: model.ErrCodeUnknownItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(clientRouter(&stubService{err: tt.err}, &user), http.MethodPut, "/orders/"+uuid.NewString(), `{"items":{}}`)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, errorCode(t, w))
		})
	}
}

func TestApplyDiscount_NotAppliedIsSuccess(t *testing.T) {
	user := uuid.New()
	svc := &stubService{result: &model.ApplyDiscountResult{
		Applied: false,
		Message: model.MsgCouponCannotStack,
		Order:   sampleOrder(),
	}}

	w := do(clientRouter(svc, &user), http.MethodPost, "/orders/"+uuid.NewString()+"/discount", `{"code":"save"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                        `json:"success"`
		Data    model.ApplyDiscountResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Data.Applied)
	assert.Equal(t, model.MsgCouponCannotStack, body.Data.Message)
	assert.Nil(t, body.Data.Discount)
}

func TestApplyDiscount_MissingCode(t *testing.T) {
	user := uuid.New()
	w := do(clientRouter(&stubService{}, &user), http.MethodPost, "/orders/"+uuid.NewString()+"/discount", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, w))
}

func TestAdminHandler_Export(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/orders/export", NewAdminHandler(&stubService{}).Export)

	w := do(r, http.MethodGet, "/admin/orders/export", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}
