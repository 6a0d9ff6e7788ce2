package service

import (
	"context"

	"github.com/google/uuid"

	"shop-backend/internal/domains/product/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter *model.ListProductsFilter) (*model.ProductPage, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
