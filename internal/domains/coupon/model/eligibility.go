package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IDSet is a set of entity identifiers.
type IDSet map[uuid.UUID]struct{}

func NewIDSet(ids ...uuid.UUID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

// Intersects reports whether any of ids is in s.
func (s IDSet) Intersects(ids []uuid.UUID) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// Restrictions are the coupon's association sets. An empty set means the
// coupon is not restricted along that axis.
type Restrictions struct {
	Products IDSet
	Clients  IDSet
}

// IsEligible decides whether a coupon with restrictions r applies to an order
// owned by userID containing orderProducts. Cases are checked in order:
//
//  1. no restrictions: eligible
//  2. products and clients: user must be a client AND an order product must match
//  3. products only: an order product must match
//  4. clients only: user must be a client
//
// Anything else is not eligible.
func IsEligible(r Restrictions, userID uuid.UUID, orderProducts []uuid.UUID) bool {
	hasProducts := len(r.Products) > 0
	hasClients := len(r.Clients) > 0

	switch {
	case !hasProducts && !hasClients:
		return true
	case hasProducts && hasClients:
		return r.Clients.Has(userID) && r.Products.Intersects(orderProducts)
	case hasProducts:
		return r.Products.Intersects(orderProducts)
	case hasClients:
		return r.Clients.Has(userID)
	}
	return false
}

// CanStack reports whether a candidate coupon may be added to an order that
// already carries existing discounts. Only the candidate's recursive flag is
// consulted; the flags of coupons already applied are ignored.
func CanStack(existing int, candidateRecursive bool) bool {
	if existing == 0 {
		return true
	}
	return candidateRecursive
}

// ClassifyCanUseFor derives CanUseFor from association sizes.
func ClassifyCanUseFor(productCount, clientCount int) CanUseFor {
	switch {
	case productCount > 0 && clientCount > 0:
		return CanUseForProductClient
	case productCount > 0:
		return CanUseForProduct
	case clientCount > 0:
		return CanUseForClient
	default:
		return CanUseForAll
	}
}

var hundred = decimal.NewFromInt(100)

// CalculateDiscount returns the amount coupon c takes off base. Percent
// coupons take Discount% of base; fixed coupons take Discount. The result is
// never more than base and is rounded to cents.
func CalculateDiscount(c *Coupon, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch c.Type {
	case TypePercent:
		amount = base.Mul(c.Discount).Div(hundred)
	case TypeFixed:
		amount = c.Discount
	default:
		return decimal.Zero
	}

	if amount.GreaterThan(base) {
		amount = base
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return amount.Round(2)
}
