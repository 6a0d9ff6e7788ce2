package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	couponModel "shop-backend/internal/domains/coupon/model"
	"shop-backend/internal/domains/order/model"
	"shop-backend/internal/domains/order/repository"
	"shop-backend/internal/shared"
	"shop-backend/pkg/database"
	"shop-backend/pkg/logger"
)

type orderService struct {
	repo     repository.OrderRepository
	coupons  CouponReader
	products ProductPricer
	tx       database.TxManager
	queue    TaskEnqueuer
	now      func() time.Time
}

func NewOrderService(
	repo repository.OrderRepository,
	coupons CouponReader,
	products ProductPricer,
	tx database.TxManager,
	queue TaskEnqueuer,
) OrderService {
	return &orderService{
		repo:     repo,
		coupons:  coupons,
		products: products,
		tx:       tx,
		queue:    queue,
		now:      time.Now,
	}
}

func (s *orderService) Create(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	items, err := model.DecodeItems(req.Items)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}
	order := &model.Order{UserID: req.UserID, Status: status}

	err = s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.repo.Create(ctx, tx, order); err != nil {
			return err
		}
		if err := s.resolvePrices(ctx, tx, items, req.UseCurrentPrices); err != nil {
			return err
		}
		return s.ReconcileItems(ctx, tx, order, items)
	})
	if err != nil {
		return nil, err
	}

	s.enqueueOrderCreated(order)

	logger.Info("order created", map[string]interface{}{
		"order_id": order.ID,
		"number":   order.Number,
		"items":    len(order.Items),
		"total":    order.Total.String(),
	})
	return order, nil
}

// Update applies a status change and, when items were submitted, reconciles
// them. Both happen in one transaction under the order row lock.
func (s *orderService) Update(ctx context.Context, id uuid.UUID, userScope *uuid.UUID, req *model.UpdateOrderRequest) (*model.Order, error) {
	var items []model.ItemInput
	reconcile := len(req.Items) > 0
	if reconcile {
		var err error
		if items, err = model.DecodeItems(req.Items); err != nil {
			return nil, err
		}
	}

	var order *model.Order
	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = s.repo.LockByID(ctx, tx, id, userScope)
		if err != nil {
			return err
		}

		if req.Status != nil && *req.Status != order.Status {
			if err := s.repo.UpdateStatus(ctx, tx, id, *req.Status); err != nil {
				return err
			}
			order.Status = *req.Status
		}

		if reconcile {
			if err := s.resolvePrices(ctx, tx, items, req.UseCurrentPrices); err != nil {
				return err
			}
			return s.ReconcileItems(ctx, tx, order, items)
		}
		return s.load(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ReconcileItems makes the order's stored items match items: missing ones
// are deleted, listed ones are overwritten and new ones are inserted. An
// empty list therefore deletes every item. Discount amounts and the order
// total are recomputed afterwards on the same tx. Every item must already
// carry a price.
func (s *orderService) ReconcileItems(ctx context.Context, tx pgx.Tx, order *model.Order, items []model.ItemInput) error {
	existing, err := s.repo.Items(ctx, tx, order.ID)
	if err != nil {
		return err
	}

	plan, err := model.PlanReconciliation(existing, items)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteItems(ctx, tx, order.ID, plan.Delete); err != nil {
		return err
	}
	if err := s.repo.UpdateItems(ctx, tx, order.ID, plan.Update); err != nil {
		return err
	}
	if err := s.repo.InsertItems(ctx, tx, order.ID, plan.Insert); err != nil {
		return err
	}

	logger.Debug("order items reconciled", map[string]interface{}{
		"order_id": order.ID,
		"deleted":  len(plan.Delete),
		"updated":  len(plan.Update),
		"inserted": len(plan.Insert),
	})
	return s.refreshTotals(ctx, tx, order)
}

// resolvePrices fills in item prices from the product catalogue: every item
// when useCurrent is set, otherwise only items submitted without a price.
func (s *orderService) resolvePrices(ctx context.Context, tx pgx.Tx, items []model.ItemInput, useCurrent bool) error {
	var ids []uuid.UUID
	for _, it := range items {
		if useCurrent || it.Price == nil {
			ids = append(ids, it.ProductID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	prices, err := s.products.Prices(ctx, tx, ids)
	if err != nil {
		return err
	}

	for i := range items {
		if !useCurrent && items[i].Price != nil {
			continue
		}
		p, ok := prices[items[i].ProductID]
		if !ok {
			return fmt.Errorf("%w: %s", model.ErrUnknownProduct, items[i].ProductID)
		}
		items[i].Price = &p
	}
	return nil
}

// refreshTotals recomputes each applied discount against the current items,
// then stores the order total, and leaves order fully loaded.
func (s *orderService) refreshTotals(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	items, err := s.repo.Items(ctx, tx, order.ID)
	if err != nil {
		return err
	}
	discounts, err := s.repo.Discounts(ctx, tx, order.ID)
	if err != nil {
		return err
	}

	for i := range discounts {
		d := &discounts[i]
		amount, err := s.discountAmount(ctx, tx, d.CouponID, items)
		if err != nil {
			return err
		}
		if amount.Equal(d.Amount) {
			continue
		}
		if err := s.repo.UpdateDiscountAmount(ctx, tx, d.ID, amount); err != nil {
			return err
		}
		d.Amount = amount
	}

	total, err := s.repo.RecalculateTotal(ctx, tx, order.ID)
	if err != nil {
		return err
	}

	order.Items, order.Discounts, order.Total = items, discounts, total
	return nil
}

func (s *orderService) discountAmount(ctx context.Context, tx pgx.Tx, couponID uuid.UUID, items []model.OrderItem) (decimal.Decimal, error) {
	coupon, err := s.coupons.FindByID(ctx, tx, couponID)
	if err != nil {
		return decimal.Zero, err
	}
	products, err := s.coupons.ProductIDs(ctx, tx, couponID)
	if err != nil {
		return decimal.Zero, err
	}
	return couponModel.CalculateDiscount(coupon, discountBase(items, products)), nil
}

// discountBase is the subtotal of items the coupon targets: items whose
// product is listed, or every item for coupons without a product list.
func discountBase(items []model.OrderItem, couponProducts []uuid.UUID) decimal.Decimal {
	if len(couponProducts) == 0 {
		return model.SubtotalWhere(items, nil)
	}
	set := couponModel.NewIDSet(couponProducts...)
	return model.SubtotalWhere(items, set.Has)
}

func (s *orderService) load(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	items, err := s.repo.Items(ctx, tx, order.ID)
	if err != nil {
		return err
	}
	discounts, err := s.repo.Discounts(ctx, tx, order.ID)
	if err != nil {
		return err
	}
	order.Items, order.Discounts = items, discounts
	return nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID, userScope *uuid.UUID) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, nil, id, userScope)
	if err != nil {
		return nil, err
	}
	if err := s.load(ctx, nil, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, filter *model.ListOrdersFilter) ([]*model.Order, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.repo.LockByID(ctx, tx, id, nil); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

// ApplyDiscount applies the coupon with code to the order. Unknown orders
// and codes are errors. A coupon that exists but is outside its validity
// window, out of stock, not eligible or not stackable yields Applied=false
// and changes nothing. Applying a coupon twice returns the existing
// discount.
func (s *orderService) ApplyDiscount(ctx context.Context, id uuid.UUID, userScope *uuid.UUID, code string) (*model.ApplyDiscountResult, error) {
	var result *model.ApplyDiscountResult

	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.repo.LockByID(ctx, tx, id, userScope)
		if err != nil {
			return err
		}

		coupon, err := s.coupons.FindByCode(ctx, tx, couponModel.NormalizeCode(code))
		if err != nil {
			return err
		}

		existing, err := s.repo.FindDiscount(ctx, tx, order.ID, coupon.ID)
		switch {
		case err == nil:
			if err := s.load(ctx, tx, order); err != nil {
				return err
			}
			result = &model.ApplyDiscountResult{Applied: true, Message: model.MsgDiscountApplied, Discount: existing, Order: order}
			return nil
		case !errors.Is(err, model.ErrDiscountNotFound):
			return err
		}

		if err := s.load(ctx, tx, order); err != nil {
			return err
		}
		rejected := func(msg string) error {
			result = &model.ApplyDiscountResult{Applied: false, Message: msg, Order: order}
			return nil
		}

		if !coupon.IsActiveAt(s.now()) {
			return rejected(model.MsgCouponInactive)
		}
		if !coupon.HasStock() {
			return rejected(model.MsgCouponExhausted)
		}

		users, err := s.coupons.UserIDs(ctx, tx, coupon.ID)
		if err != nil {
			return err
		}
		products, err := s.coupons.ProductIDs(ctx, tx, coupon.ID)
		if err != nil {
			return err
		}

		restrictions := couponModel.Restrictions{
			Products: couponModel.NewIDSet(products...),
			Clients:  couponModel.NewIDSet(users...),
		}
		if !couponModel.IsEligible(restrictions, order.UserID, order.ProductIDs()) {
			return rejected(model.MsgCouponNotEligible)
		}
		if !couponModel.CanStack(len(order.Discounts), coupon.Recursive) {
			return rejected(model.MsgCouponCannotStack)
		}

		discount := &model.Discount{
			OrderID:  order.ID,
			CouponID: coupon.ID,
			Code:     coupon.Code,
			Amount:   couponModel.CalculateDiscount(coupon, discountBase(order.Items, products)),
		}
		created, err := s.repo.CreateDiscount(ctx, tx, discount)
		if err != nil {
			return err
		}
		if created {
			if err := s.coupons.DecrementQuantity(ctx, tx, coupon.ID); err != nil {
				return err
			}
		}

		if err := s.refreshTotals(ctx, tx, order); err != nil {
			return err
		}

		result = &model.ApplyDiscountResult{Applied: true, Message: model.MsgDiscountApplied, Discount: discount, Order: order}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Applied {
		logger.Info("discount applied", map[string]interface{}{
			"order_id": id,
			"code":     result.Discount.Code,
			"amount":   result.Discount.Amount.String(),
		})
	}
	return result, nil
}

// RemoveDiscount deletes the discount from the order unconditionally and
// recomputes the total. The coupon's quantity is not restored.
func (s *orderService) RemoveDiscount(ctx context.Context, id uuid.UUID, userScope *uuid.UUID, discountID uuid.UUID) (*model.Order, error) {
	var order *model.Order
	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = s.repo.LockByID(ctx, tx, id, userScope)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteDiscount(ctx, tx, id, discountID); err != nil {
			return err
		}
		return s.refreshTotals(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// enqueueOrderCreated hands the new order to the worker. Failure is logged
// only; the order is already committed.
func (s *orderService) enqueueOrderCreated(order *model.Order) {
	if s.queue == nil {
		return
	}

	payload, err := json.Marshal(shared.OrderCreatedPayload{
		OrderID:   order.ID.String(),
		Number:    order.Number,
		UserID:    order.UserID.String(),
		Status:    string(order.Status),
		Total:     order.Total.String(),
		ItemCount: len(order.Items),
		CreatedAt: order.CreatedAt,
	})
	if err != nil {
		logger.ErrorWithFields("marshal order created payload", err, map[string]interface{}{"order_id": order.ID})
		return
	}

	task := asynq.NewTask(shared.TypeOrderCreated, payload)
	if _, err := s.queue.Enqueue(task, asynq.Queue(shared.QueueDefault), asynq.MaxRetry(5)); err != nil {
		logger.ErrorWithFields("enqueue order created", err, map[string]interface{}{"order_id": order.ID})
	}
}
