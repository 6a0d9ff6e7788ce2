package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"shop-backend/internal/domains/coupon/model"
)

// CouponRepository is the data access contract for coupons. Methods taking a
// tx run on it when non-nil and on the pool otherwise.
type CouponRepository interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Coupon, error)
	LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Coupon, error)
	FindByCode(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error)
	List(ctx context.Context, filter *model.ListCouponsFilter) ([]*model.Coupon, int, error)

	Create(ctx context.Context, tx pgx.Tx, c *model.Coupon) error
	Update(ctx context.Context, tx pgx.Tx, c *model.Coupon) error
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	DecrementQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	SetCanUseFor(ctx context.Context, tx pgx.Tx, id uuid.UUID, v model.CanUseFor) error

	// Associations
	SyncUsers(ctx context.Context, tx pgx.Tx, couponID uuid.UUID, userIDs []uuid.UUID) error
	SyncProducts(ctx context.Context, tx pgx.Tx, couponID uuid.UUID, productIDs []uuid.UUID) error
	UserIDs(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) ([]uuid.UUID, error)
	ProductIDs(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) ([]uuid.UUID, error)
	OrderIDs(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) ([]uuid.UUID, error)
}
