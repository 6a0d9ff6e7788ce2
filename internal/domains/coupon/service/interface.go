package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"shop-backend/internal/domains/coupon/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.CouponDetail, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.CouponDetail, error)
	Get(ctx context.Context, id uuid.UUID) (*model.CouponDetail, error)
	List(ctx context.Context, filter *model.ListCouponsFilter) ([]*model.Coupon, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderTotals is what coupon changes need from the order store. Orders that
// carry a coupon are locked before the coupon row, then their discount
// amounts and totals are recomputed after the coupon changes.
type OrderTotals interface {
	LockOrders(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) error
	DiscountBase(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, productIDs []uuid.UUID) (decimal.Decimal, error)
	SetCouponDiscount(ctx context.Context, tx pgx.Tx, orderID, couponID uuid.UUID, amount decimal.Decimal) error
	RecalculateTotal(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (decimal.Decimal, error)
}
