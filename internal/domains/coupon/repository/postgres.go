package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/coupon/model"
	"shop-backend/pkg/database"
)

const couponColumns = `
	id, code, discount, type, valid_from, valid_until,
	quantity, recursive, can_use_for, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) CouponRepository {
	return &postgresRepository{pool: pool}
}

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	var typ, canUseFor string
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Discount,
		&typ,
		&c.ValidFrom,
		&c.ValidUntil,
		&c.Quantity,
		&c.Recursive,
		&canUseFor,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Type = model.Type(typ)
	c.CanUseFor = model.CanUseFor(canUseFor)
	return &c, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Coupon, error) {
	return r.findByID(ctx, tx, id, "")
}

// LockByID is FindByID holding the row lock until tx ends.
func (r *postgresRepository) LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Coupon, error) {
	return r.findByID(ctx, tx, id, ` FOR UPDATE`)
}

func (r *postgresRepository) findByID(ctx context.Context, tx pgx.Tx, id uuid.UUID, suffix string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1` + suffix

	c, err := scanCoupon(database.Use(r.pool, tx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		return nil, fmt.Errorf("find coupon by id: %w", err)
	}
	return c, nil
}

// FindByCode matches the normalized code. Inside a transaction the row is
// locked so the quantity decrement that may follow cannot race.
func (r *postgresRepository) FindByCode(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`
	if tx != nil {
		query += ` FOR UPDATE`
	}

	c, err := scanCoupon(database.Use(r.pool, tx).QueryRow(ctx, query, model.NormalizeCode(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCouponNotFound
		}
		return nil, fmt.Errorf("find coupon by code: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) List(ctx context.Context, filter *model.ListCouponsFilter) ([]*model.Coupon, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Code != "" {
		where = "WHERE code ILIKE $1"
		args = append(args, "%"+filter.Code+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM coupons "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count coupons: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM coupons %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		couponColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	coupons := make([]*model.Coupon, 0, filter.Limit)
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate coupons: %w", err)
	}

	return coupons, total, nil
}

func (r *postgresRepository) Create(ctx context.Context, tx pgx.Tx, c *model.Coupon) error {
	query := `
		INSERT INTO coupons (code, discount, type, valid_from, valid_until, quantity, recursive, can_use_for)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := database.Use(r.pool, tx).QueryRow(ctx, query,
		c.Code, c.Discount, string(c.Type), c.ValidFrom, c.ValidUntil,
		c.Quantity, c.Recursive, string(c.CanUseFor),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrCouponCodeTaken
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, tx pgx.Tx, c *model.Coupon) error {
	query := `
		UPDATE coupons
		SET code = $2, discount = $3, type = $4, valid_from = $5, valid_until = $6,
		    quantity = $7, recursive = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := database.Use(r.pool, tx).QueryRow(ctx, query,
		c.ID, c.Code, c.Discount, string(c.Type), c.ValidFrom, c.ValidUntil,
		c.Quantity, c.Recursive,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCouponNotFound
		}
		if database.IsUniqueViolation(err) {
			return model.ErrCouponCodeTaken
		}
		return fmt.Errorf("update coupon: %w", err)
	}
	return nil
}

// Delete removes the coupon; coupon_user, coupon_product and coupon_order
// rows go with it through ON DELETE CASCADE.
func (r *postgresRepository) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := database.Use(r.pool, tx).Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}

func (r *postgresRepository) DecrementQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE coupons SET quantity = quantity - 1, updated_at = NOW()
		WHERE id = $1 AND quantity > 0`

	if _, err := database.Use(r.pool, tx).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("decrement coupon quantity: %w", err)
	}
	return nil
}

func (r *postgresRepository) SetCanUseFor(ctx context.Context, tx pgx.Tx, id uuid.UUID, v model.CanUseFor) error {
	query := `UPDATE coupons SET can_use_for = $2 WHERE id = $1`
	if _, err := database.Use(r.pool, tx).Exec(ctx, query, id, string(v)); err != nil {
		return fmt.Errorf("set coupon can_use_for: %w", err)
	}
	return nil
}

func (r *postgresRepository) SyncUsers(ctx context.Context, tx pgx.Tx, couponID uuid.UUID, userIDs []uuid.UUID) error {
	return r.sync(ctx, tx, "coupon_user", "user_id", couponID, userIDs)
}

func (r *postgresRepository) SyncProducts(ctx context.Context, tx pgx.Tx, couponID uuid.UUID, productIDs []uuid.UUID) error {
	return r.sync(ctx, tx, "coupon_product", "product_id", couponID, productIDs)
}

// sync replaces the association rows of couponID in table with ids.
func (r *postgresRepository) sync(ctx context.Context, tx pgx.Tx, table, column string, couponID uuid.UUID, ids []uuid.UUID) error {
	q := database.Use(r.pool, tx)

	if _, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE coupon_id = $1`, table), couponID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if len(ids) == 0 {
		return nil
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (coupon_id, %s)
		SELECT $1, UNNEST($2::uuid[])
		ON CONFLICT DO NOTHING`, table, column)
	if _, err := q.Exec(ctx, insert, couponID, ids); err != nil {
		if database.IsForeignKeyViolation(err) {
			return model.ErrUnknownReference
		}
		return fmt.Errorf("fill %s: %w", table, err)
	}
	return nil
}

func (r *postgresRepository) UserIDs(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids(ctx, tx, `SELECT user_id FROM coupon_user WHERE coupon_id = $1`, couponID)
}

func (r *postgresRepository) ProductIDs(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids(ctx, tx, `SELECT product_id FROM coupon_product WHERE coupon_id = $1`, couponID)
}

func (r *postgresRepository) OrderIDs(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids(ctx, tx, `SELECT order_id FROM coupon_order WHERE coupon_id = $1`, couponID)
}

func (r *postgresRepository) ids(ctx context.Context, tx pgx.Tx, query string, couponID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := database.Use(r.pool, tx).Query(ctx, query, couponID)
	if err != nil {
		return nil, fmt.Errorf("query coupon associations: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect coupon associations: %w", err)
	}
	return ids, nil
}
