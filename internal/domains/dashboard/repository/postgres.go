package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	SumItemSubtotals(ctx context.Context) (decimal.Decimal, error)
	SumDiscounts(ctx context.Context) (decimal.Decimal, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) StatsRepository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (r *postgresRepository) sum(ctx context.Context, table, column string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := fmt.Sprintf("SELECT COALESCE(SUM(%s), 0) FROM %s", column, table)
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum %s.%s: %w", table, column, err)
	}
	return total, nil
}

func (r *postgresRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "users")
}

func (r *postgresRepository) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, "orders")
}

func (r *postgresRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, "products")
}

func (r *postgresRepository) SumItemSubtotals(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "order_items", "subtotal")
}

func (r *postgresRepository) SumDiscounts(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, "coupon_order", "discount")
}
