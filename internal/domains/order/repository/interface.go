package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"shop-backend/internal/domains/order/model"
)

// OrderRepository is the data access contract for orders, their items and
// their applied discounts. userScope, when non-nil, restricts lookups to
// orders owned by that user.
type OrderRepository interface {
	// Orders
	Create(ctx context.Context, tx pgx.Tx, o *model.Order) error
	FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID, userScope *uuid.UUID) (*model.Order, error)
	LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID, userScope *uuid.UUID) (*model.Order, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.Status) error
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	List(ctx context.Context, filter *model.ListOrdersFilter) ([]*model.Order, int, error)
	RecalculateTotal(ctx context.Context, tx pgx.Tx, id uuid.UUID) (decimal.Decimal, error)
	LockOrders(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) error

	// Items
	Items(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error)
	InsertItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, items []model.ItemInput) error
	UpdateItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, updates []model.ItemUpdate) error
	DeleteItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, ids []uuid.UUID) error

	// Discounts
	Discounts(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.Discount, error)
	FindDiscount(ctx context.Context, tx pgx.Tx, orderID, couponID uuid.UUID) (*model.Discount, error)
	CreateDiscount(ctx context.Context, tx pgx.Tx, d *model.Discount) (bool, error)
	UpdateDiscountAmount(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) error
	DeleteDiscount(ctx context.Context, tx pgx.Tx, orderID, discountID uuid.UUID) error
	DiscountBase(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, productIDs []uuid.UUID) (decimal.Decimal, error)
	SetCouponDiscount(ctx context.Context, tx pgx.Tx, orderID, couponID uuid.UUID, amount decimal.Decimal) error
}
