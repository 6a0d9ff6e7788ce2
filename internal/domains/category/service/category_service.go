package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"shop-backend/internal/domains/category"
	"shop-backend/pkg/logger"
)

type categoryServiceImpl struct {
	repository category.CategoryRepository
}

func NewCategoryService(repo category.CategoryRepository) category.CategoryService {
	return &categoryServiceImpl{repository: repo}
}

func (s *categoryServiceImpl) Create(ctx context.Context, req *category.CreateCategoryRequest) (*category.Category, error) {
	entity := &category.Category{
		Title:       req.Title,
		Description: req.Description,
		ImageID:     req.ImageID,
	}
	if err := s.repository.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	logger.Info("category created", map[string]interface{}{
		"category_id": entity.ID,
		"title":       entity.Title,
	})
	return entity, nil
}

func (s *categoryServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *categoryServiceImpl) List(ctx context.Context, filter *category.CategoryFilter) ([]*category.Category, int, error) {
	return s.repository.List(ctx, filter)
}

func (s *categoryServiceImpl) Update(ctx context.Context, id uuid.UUID, req *category.UpdateCategoryRequest) (*category.Category, error) {
	entity, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(entity)
	if err := s.repository.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return entity, nil
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repository.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("category deleted", map[string]interface{}{"category_id": id})
	return nil
}
