package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID        uuid.UUID
	Number    int64
	UserID    uuid.UUID
	Status    Status
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time

	// Loaded on demand.
	Items     []OrderItem
	Discounts []Discount

	// Aggregates filled by list queries when Items/Discounts are not loaded.
	ItemCount     int
	ItemsSubtotal decimal.Decimal
	DiscountSum   decimal.Decimal
}

type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
	Subtotal  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Discount is one coupon applied to one order.
type Discount struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	CouponID  uuid.UUID
	Code      string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// LineSubtotal is quantity times the unit price snapshot.
func LineSubtotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Subtotal sums item subtotals, falling back to the list aggregate when
// items are not loaded.
func (o *Order) Subtotal() decimal.Decimal {
	if o.Items == nil {
		return o.ItemsSubtotal
	}
	return SubtotalWhere(o.Items, nil)
}

func (o *Order) DiscountTotal() decimal.Decimal {
	if o.Discounts == nil {
		return o.DiscountSum
	}
	sum := decimal.Zero
	for _, d := range o.Discounts {
		sum = sum.Add(d.Amount)
	}
	return sum
}

func (o *Order) QtyItems() int {
	if o.Items == nil {
		return o.ItemCount
	}
	return len(o.Items)
}

func (o *Order) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// SubtotalWhere sums the subtotals of items whose product passes keep. A nil
// keep includes every item.
func SubtotalWhere(items []OrderItem, keep func(productID uuid.UUID) bool) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		if keep == nil || keep(it.ProductID) {
			sum = sum.Add(it.Subtotal)
		}
	}
	return sum
}

// ApplyDiscountResult reports the outcome of applying a coupon code. A
// coupon that exists but cannot be used yields Applied=false, not an error.
type ApplyDiscountResult struct {
	Applied  bool
	Message  string
	Discount *Discount
	Order    *Order
}

const (
	MsgDiscountApplied   = "coupon applied"
	MsgCouponInactive    = "coupon is not valid at this time"
	MsgCouponExhausted   = "coupon has no remaining uses"
	MsgCouponNotEligible = "coupon cannot be applied to this order"
	MsgCouponCannotStack = "coupon cannot be combined with other discounts"
)
