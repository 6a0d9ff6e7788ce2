package service

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	couponModel "shop-backend/internal/domains/coupon/model"
	"shop-backend/internal/domains/order/model"
)

// OrderService owns order writes. userScope is nil for admins and the
// caller's id for clients, who can only see their own orders.
type OrderService interface {
	Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)
	Update(ctx context.Context, id uuid.UUID, userScope *uuid.UUID, req *model.UpdateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, id uuid.UUID, userScope *uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter *model.ListOrdersFilter) ([]*model.Order, int, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ReconcileItems(ctx context.Context, tx pgx.Tx, order *model.Order, items []model.ItemInput) error
	ApplyDiscount(ctx context.Context, id uuid.UUID, userScope *uuid.UUID, code string) (*model.ApplyDiscountResult, error)
	RemoveDiscount(ctx context.Context, id uuid.UUID, userScope *uuid.UUID, discountID uuid.UUID) (*model.Order, error)

	Export(ctx context.Context, filter *model.ListOrdersFilter) (*bytes.Buffer, error)
}

// CouponReader is what order processing needs from the coupon store.
type CouponReader interface {
	FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*couponModel.Coupon, error)
	FindByCode(ctx context.Context, tx pgx.Tx, code string) (*couponModel.Coupon, error)
	UserIDs(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) ([]uuid.UUID, error)
	ProductIDs(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) ([]uuid.UUID, error)
	DecrementQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

// ProductPricer returns current prices for the given products. Unknown ids
// are absent from the result.
type ProductPricer interface {
	Prices(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
