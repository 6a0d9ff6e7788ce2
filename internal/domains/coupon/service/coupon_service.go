package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"shop-backend/internal/domains/coupon/model"
	"shop-backend/internal/domains/coupon/repository"
	"shop-backend/pkg/database"
	"shop-backend/pkg/logger"
)

type CouponService struct {
	repo   repository.CouponRepository
	orders OrderTotals
	tx     database.TxManager
}

func NewCouponService(repo repository.CouponRepository, orders OrderTotals, tx database.TxManager) ServiceInterface {
	return &CouponService{repo: repo, orders: orders, tx: tx}
}

func (s *CouponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.CouponDetail, error) {
	coupon := &model.Coupon{
		Code:       model.NormalizeCode(req.Code),
		Discount:   req.Discount,
		Type:       req.Type,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
		Quantity:   req.Quantity,
		Recursive:  req.Recursive,
		CanUseFor:  model.CanUseForAll,
	}

	var detail *model.CouponDetail
	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.repo.Create(ctx, tx, coupon); err != nil {
			return err
		}
		if err := s.repo.SyncUsers(ctx, tx, coupon.ID, req.Users); err != nil {
			return err
		}
		if err := s.repo.SyncProducts(ctx, tx, coupon.ID, req.Products); err != nil {
			return err
		}

		var err error
		detail, err = s.reclassify(ctx, tx, coupon)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("coupon created", map[string]interface{}{
		"coupon_id":   coupon.ID,
		"code":        coupon.Code,
		"can_use_for": coupon.CanUseFor,
	})
	return detail, nil
}

// Update applies the patch. A nil Users or Products list keeps the current
// association; a non-nil one replaces it. Orders that already carry the
// coupon get their discount amount and total recomputed.
func (s *CouponService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCouponRequest) (*model.CouponDetail, error) {
	var detail *model.CouponDetail
	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		coupon, orderIDs, err := s.lockWithOrders(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := req.Apply(coupon); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, tx, coupon); err != nil {
			return err
		}

		if req.Users != nil {
			if err := s.repo.SyncUsers(ctx, tx, id, *req.Users); err != nil {
				return err
			}
		}
		if req.Products != nil {
			if err := s.repo.SyncProducts(ctx, tx, id, *req.Products); err != nil {
				return err
			}
		}

		detail, err = s.reclassify(ctx, tx, coupon)
		if err != nil {
			return err
		}
		return s.refreshOrders(ctx, tx, coupon, detail.Products, orderIDs)
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// lockWithOrders locks the orders carrying the coupon, then the coupon
// itself. Applying a discount locks in the same order. The order list is
// read again under the coupon lock to pick up discounts committed between
// the two reads.
func (s *CouponService) lockWithOrders(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Coupon, []uuid.UUID, error) {
	orderIDs, err := s.repo.OrderIDs(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.orders.LockOrders(ctx, tx, orderIDs); err != nil {
		return nil, nil, err
	}

	coupon, err := s.repo.LockByID(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}

	orderIDs, err = s.repo.OrderIDs(ctx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.orders.LockOrders(ctx, tx, orderIDs); err != nil {
		return nil, nil, err
	}
	return coupon, orderIDs, nil
}

// refreshOrders recomputes the coupon's discount on each order against the
// coupon's current terms, then the order total.
func (s *CouponService) refreshOrders(ctx context.Context, tx pgx.Tx, coupon *model.Coupon, products []uuid.UUID, orderIDs []uuid.UUID) error {
	for _, orderID := range orderIDs {
		base, err := s.orders.DiscountBase(ctx, tx, orderID, products)
		if err != nil {
			return err
		}
		if err := s.orders.SetCouponDiscount(ctx, tx, orderID, coupon.ID, model.CalculateDiscount(coupon, base)); err != nil {
			return err
		}
		if _, err := s.orders.RecalculateTotal(ctx, tx, orderID); err != nil {
			return fmt.Errorf("recalculate order %s: %w", orderID, err)
		}
	}
	return nil
}

// reclassify reads the stored associations back and persists the derived
// can_use_for value.
func (s *CouponService) reclassify(ctx context.Context, tx pgx.Tx, coupon *model.Coupon) (*model.CouponDetail, error) {
	users, err := s.repo.UserIDs(ctx, tx, coupon.ID)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ProductIDs(ctx, tx, coupon.ID)
	if err != nil {
		return nil, err
	}

	coupon.CanUseFor = model.ClassifyCanUseFor(len(products), len(users))
	if err := s.repo.SetCanUseFor(ctx, tx, coupon.ID, coupon.CanUseFor); err != nil {
		return nil, err
	}

	return &model.CouponDetail{Coupon: coupon, Users: users, Products: products}, nil
}

func (s *CouponService) Get(ctx context.Context, id uuid.UUID) (*model.CouponDetail, error) {
	coupon, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.UserIDs(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ProductIDs(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return &model.CouponDetail{Coupon: coupon, Users: users, Products: products}, nil
}

func (s *CouponService) List(ctx context.Context, filter *model.ListCouponsFilter) ([]*model.Coupon, int, error) {
	return s.repo.List(ctx, filter)
}

// Delete removes the coupon with its associations and order links, then
// refreshes the totals of orders that had it applied. Those orders are
// locked before the coupon.
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, orderIDs, err := s.lockWithOrders(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		for _, orderID := range orderIDs {
			if _, err := s.orders.RecalculateTotal(ctx, tx, orderID); err != nil {
				return fmt.Errorf("recalculate order %s: %w", orderID, err)
			}
		}
		return nil
	})
}
