package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"shop-backend/internal/domains/order/model"
	"shop-backend/pkg/database"
)

const orderColumns = `o.id, o.number, o.user_id, o.status, o.total, o.created_at, o.updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresRepository{pool: pool}
}

func scanOrder(row pgx.Row, extra ...any) (*model.Order, error) {
	var o model.Order
	var status string
	dest := append([]any{&o.ID, &o.Number, &o.UserID, &status, &o.Total, &o.CreatedAt, &o.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	o.Status = model.Status(status)
	return &o, nil
}

func (r *postgresRepository) Create(ctx context.Context, tx pgx.Tx, o *model.Order) error {
	query := `
		INSERT INTO orders (user_id, status, total)
		VALUES ($1, $2, 0)
		RETURNING id, number, total, created_at, updated_at`

	err := database.Use(r.pool, tx).QueryRow(ctx, query, o.UserID, string(o.Status)).
		Scan(&o.ID, &o.Number, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return model.ErrUnknownUser
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID, userScope *uuid.UUID) (*model.Order, error) {
	return r.findOne(ctx, tx, id, userScope, "")
}

// LockByID takes a row lock on the order for the rest of tx. Concurrent
// writers to the same order queue behind it.
func (r *postgresRepository) LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID, userScope *uuid.UUID) (*model.Order, error) {
	if tx == nil {
		return nil, errors.New("lock order: transaction required")
	}
	return r.findOne(ctx, tx, id, userScope, " FOR UPDATE")
}

func (r *postgresRepository) findOne(ctx context.Context, tx pgx.Tx, id uuid.UUID, userScope *uuid.UUID, suffix string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1`
	args := []any{id}
	if userScope != nil {
		query += ` AND o.user_id = $2`
		args = append(args, *userScope)
	}
	query += suffix

	o, err := scanOrder(database.Use(r.pool, tx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return o, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.Status) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := database.Use(r.pool, tx).Exec(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

// Delete removes the order; items and discount rows cascade.
func (r *postgresRepository) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := database.Use(r.pool, tx).Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, filter *model.ListOrdersFilter) ([]*model.Order, int, error) {
	var clauses []string
	var args []any

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("o.user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		clauses = append(clauses, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, filter.Search, filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(o.number::text = $%d OR o.id::text LIKE $%d)", len(args)-1, len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders o "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s,
		       COALESCE(i.cnt, 0), COALESCE(i.subtotal, 0), COALESCE(d.discount, 0)
		FROM orders o
		LEFT JOIN (
			SELECT order_id, COUNT(*) AS cnt, SUM(subtotal) AS subtotal
			FROM order_items GROUP BY order_id
		) i ON i.order_id = o.id
		LEFT JOIN (
			SELECT order_id, SUM(discount) AS discount
			FROM coupon_order GROUP BY order_id
		) d ON d.order_id = o.id
		%s
		ORDER BY o.number DESC
		LIMIT $%d OFFSET $%d`, orderColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*model.Order, 0, filter.Limit)
	for rows.Next() {
		var count int
		var subtotal, discount decimal.Decimal
		o, err := scanOrder(rows, &count, &subtotal, &discount)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		o.ItemCount, o.ItemsSubtotal, o.DiscountSum = count, subtotal, discount
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, total, nil
}

// RecalculateTotal stores max(0, items subtotal - discounts) on the order
// and returns it.
func (r *postgresRepository) RecalculateTotal(ctx context.Context, tx pgx.Tx, id uuid.UUID) (decimal.Decimal, error) {
	query := `
		UPDATE orders SET
			total = GREATEST(0,
				COALESCE((SELECT SUM(subtotal) FROM order_items WHERE order_id = $1), 0) -
				COALESCE((SELECT SUM(discount) FROM coupon_order WHERE order_id = $1), 0)),
			updated_at = NOW()
		WHERE id = $1
		RETURNING total`

	var total decimal.Decimal
	if err := database.Use(r.pool, tx).QueryRow(ctx, query, id).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, model.ErrOrderNotFound
		}
		return decimal.Zero, fmt.Errorf("recalculate order total: %w", err)
	}
	return total, nil
}

// LockOrders takes row locks on the given orders in id order, so callers
// that also lock a coupon always hold the orders first.
func (r *postgresRepository) LockOrders(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := `SELECT id FROM orders WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := database.Use(r.pool, tx).Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("lock orders: %w", err)
	}
	if _, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID]); err != nil {
		return fmt.Errorf("lock orders: %w", err)
	}
	return nil
}

func (r *postgresRepository) Items(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price, subtotal, created_at, updated_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, id`

	rows, err := database.Use(r.pool, tx).Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.Subtotal, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepository) InsertItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, items []model.ItemInput) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, it := range items {
		price := *it.Price
		batch.Queue(`
			INSERT INTO order_items (order_id, product_id, quantity, price, subtotal)
			VALUES ($1, $2, $3, $4, $5)`,
			orderID, it.ProductID, it.Quantity, price, model.LineSubtotal(it.Quantity, price))
	}
	return r.runBatch(ctx, tx, batch, "insert order item")
}

func (r *postgresRepository) UpdateItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, updates []model.ItemUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(`
			UPDATE order_items
			SET quantity = $3, price = $4, subtotal = $5, updated_at = NOW()
			WHERE id = $1 AND order_id = $2`,
			u.ID, orderID, u.Quantity, u.Price, model.LineSubtotal(u.Quantity, u.Price))
	}
	return r.runBatch(ctx, tx, batch, "update order item")
}

func (r *postgresRepository) runBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, what string) error {
	var br pgx.BatchResults
	if tx != nil {
		br = tx.SendBatch(ctx, batch)
	} else {
		br = r.pool.SendBatch(ctx, batch)
	}
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			if database.IsForeignKeyViolation(err) {
				return model.ErrUnknownProduct
			}
			return fmt.Errorf("%s: %w", what, err)
		}
	}
	return nil
}

func (r *postgresRepository) DeleteItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM order_items WHERE order_id = $1 AND id = ANY($2)`
	if _, err := database.Use(r.pool, tx).Exec(ctx, query, orderID, ids); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

const discountSelect = `
	SELECT co.id, co.order_id, co.coupon_id, c.code, co.discount, co.created_at
	FROM coupon_order co
	JOIN coupons c ON c.id = co.coupon_id`

func scanDiscount(row pgx.Row) (*model.Discount, error) {
	var d model.Discount
	if err := row.Scan(&d.ID, &d.OrderID, &d.CouponID, &d.Code, &d.Amount, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepository) Discounts(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.Discount, error) {
	rows, err := database.Use(r.pool, tx).Query(ctx, discountSelect+` WHERE co.order_id = $1 ORDER BY co.created_at, co.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query discounts: %w", err)
	}
	defer rows.Close()

	discounts := []model.Discount{}
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		discounts = append(discounts, *d)
	}
	return discounts, rows.Err()
}

func (r *postgresRepository) FindDiscount(ctx context.Context, tx pgx.Tx, orderID, couponID uuid.UUID) (*model.Discount, error) {
	d, err := scanDiscount(database.Use(r.pool, tx).QueryRow(ctx,
		discountSelect+` WHERE co.order_id = $1 AND co.coupon_id = $2`, orderID, couponID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("find discount: %w", err)
	}
	return d, nil
}

// CreateDiscount inserts the (order, coupon) row unless one exists and
// reports whether it created it. d is filled from whichever row is stored.
func (r *postgresRepository) CreateDiscount(ctx context.Context, tx pgx.Tx, d *model.Discount) (bool, error) {
	q := database.Use(r.pool, tx)

	insert := `
		INSERT INTO coupon_order (order_id, coupon_id, discount)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT coupon_order_order_id_coupon_id_key DO NOTHING
		RETURNING id, created_at`

	err := q.QueryRow(ctx, insert, d.OrderID, d.CouponID, d.Amount).Scan(&d.ID, &d.CreatedAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("insert discount: %w", err)
	}

	existing, err := r.FindDiscount(ctx, tx, d.OrderID, d.CouponID)
	if err != nil {
		return false, err
	}
	*d = *existing
	return false, nil
}

func (r *postgresRepository) UpdateDiscountAmount(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) error {
	query := `UPDATE coupon_order SET discount = $2, updated_at = NOW() WHERE id = $1`
	if _, err := database.Use(r.pool, tx).Exec(ctx, query, id, amount); err != nil {
		return fmt.Errorf("update discount amount: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteDiscount(ctx context.Context, tx pgx.Tx, orderID, discountID uuid.UUID) error {
	query := `DELETE FROM coupon_order WHERE id = $1 AND order_id = $2`
	tag, err := database.Use(r.pool, tx).Exec(ctx, query, discountID, orderID)
	if err != nil {
		return fmt.Errorf("delete discount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDiscountNotFound
	}
	return nil
}

// DiscountBase sums the subtotals of the order's items whose product is in
// productIDs, or of every item when productIDs is empty.
func (r *postgresRepository) DiscountBase(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, productIDs []uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(subtotal), 0)
		FROM order_items
		WHERE order_id = $1
		  AND (COALESCE(cardinality($2::uuid[]), 0) = 0 OR product_id = ANY($2))`

	var base decimal.Decimal
	if err := database.Use(r.pool, tx).QueryRow(ctx, query, orderID, productIDs).Scan(&base); err != nil {
		return decimal.Zero, fmt.Errorf("discount base: %w", err)
	}
	return base, nil
}

func (r *postgresRepository) SetCouponDiscount(ctx context.Context, tx pgx.Tx, orderID, couponID uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE coupon_order SET discount = $3, updated_at = NOW()
		WHERE order_id = $1 AND coupon_id = $2`
	if _, err := database.Use(r.pool, tx).Exec(ctx, query, orderID, couponID, amount); err != nil {
		return fmt.Errorf("set coupon discount: %w", err)
	}
	return nil
}
