package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"shop-backend/internal/domains/dashboard/model"
	"shop-backend/internal/domains/dashboard/repository"
	"shop-backend/pkg/cache"
	"shop-backend/pkg/logger"
)

type ServiceInterface interface {
	// Get serves the cached stats, computing them on a miss.
	Get(ctx context.Context) (*model.Stats, error)
	// Refresh recomputes the stats and overwrites the cache.
	Refresh(ctx context.Context) (*model.Stats, error)
}

type DashboardService struct {
	repo  repository.StatsRepository
	cache cache.Cache
	now   func() time.Time
}

func NewDashboardService(repo repository.StatsRepository, cache cache.Cache) ServiceInterface {
	return &DashboardService{repo: repo, cache: cache, now: time.Now}
}

func (s *DashboardService) Get(ctx context.Context) (*model.Stats, error) {
	var cached model.Stats
	found, err := s.cache.Get(ctx, model.CacheKey, &cached)
	if err != nil {
		logger.Warn("dashboard cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return &cached, nil
	}
	return s.Refresh(ctx)
}

func (s *DashboardService) Refresh(ctx context.Context) (*model.Stats, error) {
	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, model.CacheKey, stats, model.CacheTTL); err != nil {
		logger.Warn("dashboard cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return stats, nil
}

// compute runs the five aggregate queries concurrently.
func (s *DashboardService) compute(ctx context.Context) (*model.Stats, error) {
	var (
		stats     model.Stats
		subtotals decimal.Decimal
		discounts decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Users, err = s.repo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Orders, err = s.repo.CountOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Products, err = s.repo.CountProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		subtotals, err = s.repo.SumItemSubtotals(gctx)
		return err
	})
	g.Go(func() (err error) {
		discounts, err = s.repo.SumDiscounts(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute dashboard stats: %w", err)
	}

	stats.Revenues = subtotals.Sub(discounts).Round(2)
	stats.GeneratedAt = s.now().UTC()
	return &stats, nil
}
