package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type selects how Coupon.Discount is interpreted.
type Type string

const (
	TypeFixed   Type = "fixed"
	TypePercent Type = "percent"
)

func (t Type) IsValid() bool {
	return t == TypeFixed || t == TypePercent
}

// CanUseFor is derived from the coupon's user and product associations.
// It is recomputed on every sync and never accepted from input.
type CanUseFor string

const (
	CanUseForAll           CanUseFor = "all"
	CanUseForClient        CanUseFor = "client"
	CanUseForProduct       CanUseFor = "product"
	CanUseForProductClient CanUseFor = "product_client"
)

type Coupon struct {
	ID         uuid.UUID       `json:"id"`
	Code       string          `json:"code"`
	Discount   decimal.Decimal `json:"discount"`
	Type       Type            `json:"type"`
	ValidFrom  *time.Time      `json:"valid_from,omitempty"`
	ValidUntil *time.Time      `json:"valid_until,omitempty"`
	Quantity   int             `json:"quantity"`
	Recursive  bool            `json:"recursive"`
	CanUseFor  CanUseFor       `json:"can_use_for"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NormalizeCode is the canonical stored and compared form of a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsActiveAt reports whether t falls inside the validity window. A nil
// bound leaves that side open.
func (c *Coupon) IsActiveAt(t time.Time) bool {
	if c.ValidFrom != nil && t.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && t.After(*c.ValidUntil) {
		return false
	}
	return true
}

func (c *Coupon) HasStock() bool {
	return c.Quantity > 0
}
