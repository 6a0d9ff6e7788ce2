package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest is the admin payload for a new coupon. Users and
// Products restrict who and what the coupon applies to; empty means no
// restriction.
type CreateCouponRequest struct {
	Code       string          `json:"code"`
	Discount   decimal.Decimal `json:"discount"`
	Type       Type            `json:"type"`
	ValidFrom  *time.Time      `json:"valid_from"`
	ValidUntil *time.Time      `json:"valid_until"`
	Quantity   int             `json:"quantity"`
	Recursive  bool            `json:"recursive"`
	Users      []uuid.UUID     `json:"users"`
	Products   []uuid.UUID     `json:"products"`
}

func (r *CreateCouponRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Code, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Type, validation.Required, validation.In(TypeFixed, TypePercent)),
		validation.Field(&r.Discount, validation.By(nonNegativeDecimal)),
		validation.Field(&r.Quantity, validation.Min(0)),
	)
	if err != nil {
		return err
	}
	return checkCouponShape(r.Type, r.Discount, r.ValidFrom, r.ValidUntil)
}

// UpdateCouponRequest patches a coupon. Nil fields are left untouched. A
// non-nil Users or Products list replaces the association, so an empty list
// removes the restriction.
type UpdateCouponRequest struct {
	Code       *string          `json:"code"`
	Discount   *decimal.Decimal `json:"discount"`
	Type       *Type            `json:"type"`
	ValidFrom  *time.Time       `json:"valid_from"`
	ValidUntil *time.Time       `json:"valid_until"`
	Quantity   *int             `json:"quantity"`
	Recursive  *bool            `json:"recursive"`
	Users      *[]uuid.UUID     `json:"users"`
	Products   *[]uuid.UUID     `json:"products"`
}

func (r *UpdateCouponRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Code, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&r.Type, validation.NilOrNotEmpty, validation.In(TypeFixed, TypePercent)),
		validation.Field(&r.Discount, validation.By(nonNegativeDecimal)),
		validation.Field(&r.Quantity, validation.Min(0)),
	)
}

// Apply merges the patch into c and checks the merged result.
func (r *UpdateCouponRequest) Apply(c *Coupon) error {
	if r.Code != nil {
		c.Code = NormalizeCode(*r.Code)
	}
	if r.Discount != nil {
		c.Discount = *r.Discount
	}
	if r.Type != nil {
		c.Type = *r.Type
	}
	if r.ValidFrom != nil {
		c.ValidFrom = r.ValidFrom
	}
	if r.ValidUntil != nil {
		c.ValidUntil = r.ValidUntil
	}
	if r.Quantity != nil {
		c.Quantity = *r.Quantity
	}
	if r.Recursive != nil {
		c.Recursive = *r.Recursive
	}
	return checkCouponShape(c.Type, c.Discount, c.ValidFrom, c.ValidUntil)
}

func checkCouponShape(t Type, discount decimal.Decimal, from, until *time.Time) error {
	if t == TypePercent && discount.GreaterThan(hundred) {
		return validation.Errors{"discount": errors.New("percent discount cannot exceed 100")}
	}
	if from != nil && until != nil && !from.Before(*until) {
		return ErrInvalidWindow
	}
	return nil
}

func nonNegativeDecimal(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return errors.New("must be a decimal")
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}

// ListCouponsFilter narrows the admin coupon list.
type ListCouponsFilter struct {
	Code  string
	Page  int
	Limit int
}

// CouponDetail is a coupon together with its restriction lists.
type CouponDetail struct {
	*Coupon
	Users    []uuid.UUID `json:"users"`
	Products []uuid.UUID `json:"products"`
}
