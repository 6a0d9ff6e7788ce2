package model

import (
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the admin create payload. Clients omit UserID; the
// handler fills it from the token. Items stays raw so a non-array value can
// be told apart from an empty list.
type CreateOrderRequest struct {
	UserID uuid.UUID       `json:"user_id"`
	Status Status          `json:"status"`
	Items  json.RawMessage `json:"items"`

	// UseCurrentPrices ignores submitted prices and snapshots the
	// product's price instead. Set for client requests.
	UseCurrentPrices bool `json:"-"`
}

func (r *CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID, validation.By(notNilUUID)),
		validation.Field(&r.Status, validation.In(StatusPending, StatusProcessing, StatusCompleted, StatusCancelled)),
	)
}

// UpdateOrderRequest changes status and/or reconciles items. An absent
// items field leaves items untouched; any other non-array value is rejected.
type UpdateOrderRequest struct {
	Status *Status         `json:"status"`
	Items  json.RawMessage `json:"items"`

	UseCurrentPrices bool `json:"-"`
}

func (r *UpdateOrderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.NilOrNotEmpty,
			validation.In(StatusPending, StatusProcessing, StatusCompleted, StatusCancelled)),
	)
}

type ApplyDiscountRequest struct {
	Code string `json:"code"`
}

func (r *ApplyDiscountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Code, validation.Required, validation.Length(1, 100)),
	)
}

type RemoveDiscountRequest struct {
	DiscountID uuid.UUID `json:"discount_id"`
}

func (r *RemoveDiscountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DiscountID, validation.By(notNilUUID)),
	)
}

// ListOrdersFilter narrows order lists. UserID scopes the list to one
// client. Search matches the order number or a prefix of the id.
type ListOrdersFilter struct {
	UserID *uuid.UUID
	Status Status
	Search string
	Page   int
	Limit  int
}

// OrderResponse is the public shape of an order.
type OrderResponse struct {
	ID        uuid.UUID          `json:"id"`
	Number    int64              `json:"number"`
	UserID    uuid.UUID          `json:"user_id"`
	Status    Status             `json:"status"`
	Total     decimal.Decimal    `json:"total"`
	QtyItems  int                `json:"qty_items"`
	Date      time.Time          `json:"date"`
	Discount  decimal.Decimal    `json:"discount"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Items     []ItemResponse     `json:"items,omitempty"`
	Discounts []DiscountResponse `json:"discounts,omitempty"`
}

type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type DiscountResponse struct {
	ID       uuid.UUID       `json:"id"`
	CouponID uuid.UUID       `json:"coupon_id"`
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
}

type ApplyDiscountResponse struct {
	Applied  bool              `json:"applied"`
	Message  string            `json:"message"`
	Discount *DiscountResponse `json:"discount,omitempty"`
	Order    *OrderResponse    `json:"order"`
}

func ToOrderResponse(o *Order) *OrderResponse {
	resp := &OrderResponse{
		ID:       o.ID,
		Number:   o.Number,
		UserID:   o.UserID,
		Status:   o.Status,
		Total:    o.Total.Round(2),
		QtyItems: o.QtyItems(),
		Date:     o.CreatedAt,
		Discount: o.DiscountTotal().Round(2),
		Subtotal: o.Subtotal().Round(2),
	}

	for _, it := range o.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal,
		})
	}
	for i := range o.Discounts {
		resp.Discounts = append(resp.Discounts, *toDiscountResponse(&o.Discounts[i]))
	}
	return resp
}

func ToOrderResponses(orders []*Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}

func ToApplyDiscountResponse(r *ApplyDiscountResult) *ApplyDiscountResponse {
	resp := &ApplyDiscountResponse{Applied: r.Applied, Message: r.Message}
	if r.Discount != nil {
		resp.Discount = toDiscountResponse(r.Discount)
	}
	if r.Order != nil {
		resp.Order = ToOrderResponse(r.Order)
	}
	return resp
}

func toDiscountResponse(d *Discount) *DiscountResponse {
	return &DiscountResponse{ID: d.ID, CouponID: d.CouponID, Code: d.Code, Discount: d.Amount}
}
