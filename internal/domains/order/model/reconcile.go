package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemInput is one submitted line. ID is set for an item that already
// exists on the order. Price is the unit price snapshot; nil means the
// product's current price.
type ItemInput struct {
	ID        *uuid.UUID       `json:"id"`
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
}

func (i ItemInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ProductID, validation.By(notNilUUID)),
		validation.Field(&i.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&i.Price, validation.By(nonNegativePrice)),
	)
}

func notNilUUID(value interface{}) error {
	if id, ok := value.(uuid.UUID); ok && id != uuid.Nil {
		return nil
	}
	return errors.New("is required")
}

func nonNegativePrice(value interface{}) error {
	p, _ := value.(*decimal.Decimal)
	if p != nil && p.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}

// DecodeItems parses the raw items field. Anything other than a JSON array,
// including null or an absent field, is rejected with ErrInvalidItems.
func DecodeItems(raw json.RawMessage) ([]ItemInput, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrInvalidItems
	}

	var items []ItemInput
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidItems, err)
	}
	if items == nil {
		items = []ItemInput{}
	}

	if err := validation.Validate(items); err != nil {
		return nil, err
	}
	return items, nil
}

// ItemUpdate overwrites the mutable fields of a surviving item.
type ItemUpdate struct {
	ID       uuid.UUID
	Quantity int
	Price    decimal.Decimal
}

// ReconcilePlan lists the writes that bring an order's items in line with a
// submitted list.
type ReconcilePlan struct {
	Delete []uuid.UUID
	Update []ItemUpdate
	Insert []ItemInput
}

// PlanReconciliation diffs submitted against existing. Existing items whose
// id is absent from submitted are deleted, so an empty submitted list
// deletes every item. Survivors take the submitted quantity and price;
// entries without an id are inserted.
//
// Every submitted entry must have a resolved Price. An id that is not an
// existing item, that appears twice, or whose product_id differs from the
// stored item's product fails the whole plan.
func PlanReconciliation(existing []OrderItem, submitted []ItemInput) (*ReconcilePlan, error) {
	current := make(map[uuid.UUID]uuid.UUID, len(existing))
	for _, it := range existing {
		current[it.ID] = it.ProductID
	}

	plan := &ReconcilePlan{}
	seen := make(map[uuid.UUID]struct{}, len(submitted))

	for _, in := range submitted {
		if in.Price == nil {
			return nil, fmt.Errorf("item for product %s has no price", in.ProductID)
		}
		if in.ID == nil {
			plan.Insert = append(plan.Insert, in)
			continue
		}

		id := *in.ID
		productID, ok := current[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
		}
		if productID != in.ProductID {
			return nil, fmt.Errorf("%w: %s belongs to product %s", ErrUnknownItem, id, productID)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, id)
		}
		seen[id] = struct{}{}

		plan.Update = append(plan.Update, ItemUpdate{ID: id, Quantity: in.Quantity, Price: *in.Price})
	}

	for _, it := range existing {
		if _, keep := seen[it.ID]; !keep {
			plan.Delete = append(plan.Delete, it.ID)
		}
	}

	return plan, nil
}
