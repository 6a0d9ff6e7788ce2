package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	couponModel "shop-backend/internal/domains/coupon/model"
	"shop-backend/internal/domains/order/model"
	"shop-backend/pkg/database"
)

// fakeTx copies both stores before fn runs and puts the copies back when
// fn fails, like a rolled back transaction.
type fakeTx struct {
	orders  *fakeOrders
	coupons *fakeCoupons
}

func (t fakeTx) WithTransaction(_ context.Context, fn database.TxFunc) error {
	orders, coupons := t.orders.clone(), t.coupons.clone()
	if err := fn(nil); err != nil {
		t.orders.restore(orders)
		t.coupons.restore(coupons)
		return err
	}
	return nil
}

// fakeOrders keeps orders, items and discounts in memory. It mirrors the
// SQL repository closely enough for service tests. failures makes the
// named method return the given error.
type fakeOrders struct {
	orders    map[uuid.UUID]*model.Order
	items     map[uuid.UUID][]model.OrderItem
	discounts []model.Discount
	number    int64
	clock     time.Time
	failures  map[string]error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{
		orders:   map[uuid.UUID]*model.Order{},
		items:    map[uuid.UUID][]model.OrderItem{},
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		failures: map[string]error{},
	}
}

func (f *fakeOrders) clone() *fakeOrders {
	cp := &fakeOrders{
		orders:    make(map[uuid.UUID]*model.Order, len(f.orders)),
		items:     make(map[uuid.UUID][]model.OrderItem, len(f.items)),
		discounts: append([]model.Discount(nil), f.discounts...),
		number:    f.number,
		clock:     f.clock,
	}
	for id, o := range f.orders {
		o := *o
		cp.orders[id] = &o
	}
	for id, items := range f.items {
		cp.items[id] = append([]model.OrderItem(nil), items...)
	}
	return cp
}

func (f *fakeOrders) restore(from *fakeOrders) {
	f.orders, f.items, f.discounts = from.orders, from.items, from.discounts
	f.number, f.clock = from.number, from.clock
}

func (f *fakeOrders) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeOrders) Create(_ context.Context, _ pgx.Tx, o *model.Order) error {
	f.number++
	o.ID, o.Number, o.CreatedAt = uuid.New(), f.number, f.tick()
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, _ pgx.Tx, id uuid.UUID, userScope *uuid.UUID) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok || (userScope != nil && o.UserID != *userScope) {
		return nil, model.ErrOrderNotFound
	}
	cp := *o
	cp.Items, cp.Discounts = nil, nil
	return &cp, nil
}

func (f *fakeOrders) LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID, userScope *uuid.UUID) (*model.Order, error) {
	return f.FindByID(ctx, tx, id, userScope)
}

func (f *fakeOrders) UpdateStatus(_ context.Context, _ pgx.Tx, id uuid.UUID, status model.Status) error {
	f.orders[id].Status = status
	return nil
}

func (f *fakeOrders) Delete(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	if _, ok := f.orders[id]; !ok {
		return model.ErrOrderNotFound
	}
	delete(f.orders, id)
	delete(f.items, id)
	kept := f.discounts[:0]
	for _, d := range f.discounts {
		if d.OrderID != id {
			kept = append(kept, d)
		}
	}
	f.discounts = kept
	return nil
}

func (f *fakeOrders) List(_ context.Context, filter *model.ListOrdersFilter) ([]*model.Order, int, error) {
	var out []*model.Order
	for _, o := range f.orders {
		if filter.UserID != nil && o.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		cp := *o
		cp.ItemCount = len(f.items[o.ID])
		cp.ItemsSubtotal = model.SubtotalWhere(f.items[o.ID], nil)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })

	total := len(out)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (f *fakeOrders) RecalculateTotal(_ context.Context, _ pgx.Tx, id uuid.UUID) (decimal.Decimal, error) {
	o, ok := f.orders[id]
	if !ok {
		return decimal.Zero, model.ErrOrderNotFound
	}
	sum := decimal.Zero
	for _, d := range f.discounts {
		if d.OrderID == id {
			sum = sum.Add(d.Amount)
		}
	}
	if err := f.failures["RecalculateTotal"]; err != nil {
		return decimal.Zero, err
	}
	o.Total = decimal.Max(decimal.Zero, model.SubtotalWhere(f.items[id], nil).Sub(sum))
	return o.Total, nil
}

func (f *fakeOrders) LockOrders(_ context.Context, _ pgx.Tx, ids []uuid.UUID) error {
	return f.failures["LockOrders"]
}

func (f *fakeOrders) Items(_ context.Context, _ pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error) {
	return append([]model.OrderItem{}, f.items[orderID]...), nil
}

func (f *fakeOrders) InsertItems(_ context.Context, _ pgx.Tx, orderID uuid.UUID, items []model.ItemInput) error {
	if err := f.failures["InsertItems"]; err != nil {
		return err
	}
	for _, it := range items {
		f.items[orderID] = append(f.items[orderID], model.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     *it.Price,
			Subtotal:  model.LineSubtotal(it.Quantity, *it.Price),
			CreatedAt: f.tick(),
		})
	}
	return nil
}

func (f *fakeOrders) UpdateItems(_ context.Context, _ pgx.Tx, orderID uuid.UUID, updates []model.ItemUpdate) error {
	for _, u := range updates {
		for i := range f.items[orderID] {
			it := &f.items[orderID][i]
			if it.ID == u.ID {
				it.Quantity, it.Price = u.Quantity, u.Price
				it.Subtotal = model.LineSubtotal(u.Quantity, u.Price)
			}
		}
	}
	return nil
}

func (f *fakeOrders) DeleteItems(_ context.Context, _ pgx.Tx, orderID uuid.UUID, ids []uuid.UUID) error {
	if err := f.failures["DeleteItems"]; err != nil {
		return err
	}
	drop := couponModel.NewIDSet(ids...)
	var kept []model.OrderItem
	for _, it := range f.items[orderID] {
		if !drop.Has(it.ID) {
			kept = append(kept, it)
		}
	}
	f.items[orderID] = kept
	return nil
}

func (f *fakeOrders) Discounts(_ context.Context, _ pgx.Tx, orderID uuid.UUID) ([]model.Discount, error) {
	out := []model.Discount{}
	for _, d := range f.discounts {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeOrders) FindDiscount(_ context.Context, _ pgx.Tx, orderID, couponID uuid.UUID) (*model.Discount, error) {
	for _, d := range f.discounts {
		if d.OrderID == orderID && d.CouponID == couponID {
			cp := d
			return &cp, nil
		}
	}
	return nil, model.ErrDiscountNotFound
}

func (f *fakeOrders) CreateDiscount(ctx context.Context, tx pgx.Tx, d *model.Discount) (bool, error) {
	if err := f.failures["CreateDiscount"]; err != nil {
		return false, err
	}
	if existing, err := f.FindDiscount(ctx, tx, d.OrderID, d.CouponID); err == nil {
		*d = *existing
		return false, nil
	}
	d.ID, d.CreatedAt = uuid.New(), f.tick()
	f.discounts = append(f.discounts, *d)
	return true, nil
}

func (f *fakeOrders) UpdateDiscountAmount(_ context.Context, _ pgx.Tx, id uuid.UUID, amount decimal.Decimal) error {
	for i := range f.discounts {
		if f.discounts[i].ID == id {
			f.discounts[i].Amount = amount
		}
	}
	return nil
}

func (f *fakeOrders) DeleteDiscount(_ context.Context, _ pgx.Tx, orderID, discountID uuid.UUID) error {
	for i, d := range f.discounts {
		if d.ID == discountID && d.OrderID == orderID {
			f.discounts = append(f.discounts[:i], f.discounts[i+1:]...)
			return nil
		}
	}
	return model.ErrDiscountNotFound
}

func (f *fakeOrders) DiscountBase(_ context.Context, _ pgx.Tx, orderID uuid.UUID, productIDs []uuid.UUID) (decimal.Decimal, error) {
	if len(productIDs) == 0 {
		return model.SubtotalWhere(f.items[orderID], nil), nil
	}
	return model.SubtotalWhere(f.items[orderID], couponModel.NewIDSet(productIDs...).Has), nil
}

func (f *fakeOrders) SetCouponDiscount(_ context.Context, _ pgx.Tx, orderID, couponID uuid.UUID, amount decimal.Decimal) error {
	for i := range f.discounts {
		if f.discounts[i].OrderID == orderID && f.discounts[i].CouponID == couponID {
			f.discounts[i].Amount = amount
		}
	}
	return nil
}

type fakeCoupons struct {
	byID     map[uuid.UUID]*couponModel.Coupon
	users    map[uuid.UUID][]uuid.UUID
	products map[uuid.UUID][]uuid.UUID
}

func newFakeCoupons() *fakeCoupons {
	return &fakeCoupons{
		byID:     map[uuid.UUID]*couponModel.Coupon{},
		users:    map[uuid.UUID][]uuid.UUID{},
		products: map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *fakeCoupons) clone() *fakeCoupons {
	cp := newFakeCoupons()
	for id, c := range f.byID {
		c := *c
		cp.byID[id] = &c
	}
	for id, ids := range f.users {
		cp.users[id] = ids
	}
	for id, ids := range f.products {
		cp.products[id] = ids
	}
	return cp
}

func (f *fakeCoupons) restore(from *fakeCoupons) {
	f.byID, f.users, f.products = from.byID, from.users, from.products
}

func (f *fakeCoupons) add(c couponModel.Coupon, users, products []uuid.UUID) *couponModel.Coupon {
	c.ID = uuid.New()
	c.Code = couponModel.NormalizeCode(c.Code)
	f.byID[c.ID] = &c
	f.users[c.ID] = users
	f.products[c.ID] = products
	return &c
}

func (f *fakeCoupons) FindByID(_ context.Context, _ pgx.Tx, id uuid.UUID) (*couponModel.Coupon, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, couponModel.ErrCouponNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCoupons) FindByCode(_ context.Context, _ pgx.Tx, code string) (*couponModel.Coupon, error) {
	for _, c := range f.byID {
		if c.Code == couponModel.NormalizeCode(code) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, couponModel.ErrCouponNotFound
}

func (f *fakeCoupons) UserIDs(_ context.Context, _ pgx.Tx, id uuid.UUID) ([]uuid.UUID, error) {
	return f.users[id], nil
}

func (f *fakeCoupons) ProductIDs(_ context.Context, _ pgx.Tx, id uuid.UUID) ([]uuid.UUID, error) {
	return f.products[id], nil
}

func (f *fakeCoupons) DecrementQuantity(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	if c := f.byID[id]; c.Quantity > 0 {
		c.Quantity--
	}
	return nil
}

type fakePrices map[uuid.UUID]decimal.Decimal

func (f fakePrices) Prices(_ context.Context, _ pgx.Tx, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	out := map[uuid.UUID]decimal.Decimal{}
	for _, id := range ids {
		if p, ok := f[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeQueue struct {
	tasks []*asynq.Task
}

func (q *fakeQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{}, nil
}
