package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-backend/internal/domains/image/model"
)

type ImageRepository interface {
	Create(ctx context.Context, img *model.Image) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Image, error)
	List(ctx context.Context, filter *model.ListImagesFilter) ([]*model.Image, int, error)
	Rename(ctx context.Context, id uuid.UUID, originalName string) (*model.Image, error)
	// Delete removes the row and returns it so callers can drop the objects.
	Delete(ctx context.Context, id uuid.UUID) (*model.Image, error)
}

const imageColumns = `id, path, thumbnail, size, original_name, extension, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ImageRepository {
	return &postgresRepository{pool: pool}
}

func scanImage(row pgx.Row) (*model.Image, error) {
	var img model.Image
	err := row.Scan(&img.ID, &img.Path, &img.Thumbnail, &img.Size, &img.OriginalName,
		&img.Extension, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrImageNotFound
		}
		return nil, err
	}
	return &img, nil
}

func (r *postgresRepository) Create(ctx context.Context, img *model.Image) error {
	query := `
		INSERT INTO images (path, thumbnail, size, original_name, extension)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, img.Path, img.Thumbnail, img.Size, img.OriginalName, img.Extension).
		Scan(&img.ID, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	img, err := scanImage(r.pool.QueryRow(ctx, `SELECT `+imageColumns+` FROM images WHERE id = $1`, id))
	if err != nil && !errors.Is(err, model.ErrImageNotFound) {
		return nil, fmt.Errorf("find image: %w", err)
	}
	return img, err
}

func (r *postgresRepository) List(ctx context.Context, filter *model.ListImagesFilter) ([]*model.Image, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM images`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count images: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+imageColumns+` FROM images ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := make([]*model.Image, 0, filter.Limit)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, total, rows.Err()
}

func (r *postgresRepository) Rename(ctx context.Context, id uuid.UUID, originalName string) (*model.Image, error) {
	query := `
		UPDATE images SET original_name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + imageColumns

	img, err := scanImage(r.pool.QueryRow(ctx, query, id, originalName))
	if err != nil && !errors.Is(err, model.ErrImageNotFound) {
		return nil, fmt.Errorf("rename image: %w", err)
	}
	return img, err
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	img, err := scanImage(r.pool.QueryRow(ctx, `DELETE FROM images WHERE id = $1 RETURNING `+imageColumns, id))
	if err != nil && !errors.Is(err, model.ErrImageNotFound) {
		return nil, fmt.Errorf("delete image: %w", err)
	}
	return img, err
}
