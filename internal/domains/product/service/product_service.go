package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shop-backend/internal/domains/product/model"
	"shop-backend/internal/domains/product/repository"
	"shop-backend/pkg/cache"
	"shop-backend/pkg/logger"
)

const (
	detailTTL = 10 * time.Minute
	listTTL   = 5 * time.Minute
)

// ProductService reads through the cache and drops every cached product
// entry after a write.
type ProductService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache) ServiceInterface {
	return &ProductService{repo: repo, cache: cache}
}

func (s *ProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		ImageID:     req.ImageID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	logger.Info("product created", map[string]interface{}{"product_id": p.ID, "price": p.Price.String()})
	return p, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	key := model.DetailCacheKey(id)

	var cached model.Product
	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		logger.Warn("product cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	} else if found {
		return &cached, nil
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, p, detailTTL); err != nil {
		logger.Warn("product cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, filter *model.ListProductsFilter) (*model.ProductPage, error) {
	key := model.ListCacheKey(filter)

	var cached model.ProductPage
	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		logger.Warn("product cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	} else if found {
		return &cached, nil
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := &model.ProductPage{Items: items, Total: total}

	if err := s.cache.Set(ctx, key, page, listTTL); err != nil {
		logger.Warn("product cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return page, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(p)
	p.Price = p.Price.Round(2)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	logger.Info("product deleted", map[string]interface{}{"product_id": id})
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, model.CachePattern); err != nil {
		logger.Warn("product cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
