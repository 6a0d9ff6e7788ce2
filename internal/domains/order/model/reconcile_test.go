package model

import (
	"encoding/json"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestDecodeItems(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr error
	}{
		{name: "array", raw: `[{"product_id":"` + uuid.NewString() + `","quantity":2,"price":"9.90"}]`, wantLen: 1},
		{name: "empty array", raw: `[]`, wantLen: 0},
		{name: "object", raw: `{"product_id":"x"}`, wantErr: ErrInvalidItems},
		{name: "string", raw: `"items"`, wantErr: ErrInvalidItems},
		{name: "null", raw: `null`, wantErr: ErrInvalidItems},
		{name: "missing", raw: ``, wantErr: ErrInvalidItems},
		{name: "malformed array", raw: `[{"quantity":"two"}]`, wantErr: ErrInvalidItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := DecodeItems(json.RawMessage(tt.raw))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Len(t, items, tt.wantLen)
		})
	}
}

func TestDecodeItems_FieldValidation(t *testing.T) {
	_, err := DecodeItems(json.RawMessage(`[{"product_id":"` + uuid.NewString() + `","quantity":0}]`))
	require.Error(t, err)

	var fieldErrs validation.Errors
	assert.ErrorAs(t, err, &fieldErrs)
}

func TestPlanReconciliation(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	p1, p2 := uuid.New(), uuid.New()
	existing := []OrderItem{
		{ID: a, ProductID: p1, Quantity: 1, Price: decimal.NewFromInt(10)},
		{ID: b, ProductID: p2, Quantity: 1, Price: decimal.NewFromInt(20)},
		{ID: c, ProductID: p2, Quantity: 3, Price: decimal.NewFromInt(20)},
	}

	t.Run("keeps, updates, deletes and inserts", func(t *testing.T) {
		plan, err := PlanReconciliation(existing, []ItemInput{
			{ID: &a, ProductID: p1, Quantity: 5, Price: price("11")},
			{ProductID: p2, Quantity: 2, Price: price("20")},
		})
		require.NoError(t, err)

		assert.ElementsMatch(t, []uuid.UUID{b, c}, plan.Delete)
		require.Len(t, plan.Update, 1)
		assert.Equal(t, a, plan.Update[0].ID)
		assert.Equal(t, 5, plan.Update[0].Quantity)
		assert.True(t, decimal.NewFromInt(11).Equal(plan.Update[0].Price))
		require.Len(t, plan.Insert, 1)
		assert.Equal(t, p2, plan.Insert[0].ProductID)
	})

	t.Run("empty list deletes every item", func(t *testing.T) {
		plan, err := PlanReconciliation(existing, []ItemInput{})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a, b, c}, plan.Delete)
		assert.Empty(t, plan.Update)
		assert.Empty(t, plan.Insert)
	})

	t.Run("no existing items inserts everything", func(t *testing.T) {
		plan, err := PlanReconciliation(nil, []ItemInput{
			{ProductID: p1, Quantity: 1, Price: price("1")},
			{ProductID: p2, Quantity: 1, Price: price("2")},
		})
		require.NoError(t, err)
		assert.Len(t, plan.Insert, 2)
		assert.Empty(t, plan.Delete)
	})

	t.Run("unknown id fails", func(t *testing.T) {
		stranger := uuid.New()
		_, err := PlanReconciliation(existing, []ItemInput{{ID: &stranger, ProductID: p1, Quantity: 1, Price: price("1")}})
		assert.ErrorIs(t, err, ErrUnknownItem)
	})

	t.Run("duplicate id fails", func(t *testing.T) {
		_, err := PlanReconciliation(existing, []ItemInput{
			{ID: &a, ProductID: p1, Quantity: 1, Price: price("1")},
			{ID: &a, ProductID: p1, Quantity: 2, Price: price("1")},
		})
		assert.ErrorIs(t, err, ErrDuplicateItem)
	})

	t.Run("identical list is a no-op update", func(t *testing.T) {
		plan, err := PlanReconciliation(existing[:1], []ItemInput{{ID: &a, ProductID: p1, Quantity: 1, Price: price("10")}})
		require.NoError(t, err)
		assert.Empty(t, plan.Delete)
		assert.Len(t, plan.Update, 1)
	})

	t.Run("id with another product fails", func(t *testing.T) {
		_, err := PlanReconciliation(existing, []ItemInput{{ID: &b, ProductID: p1, Quantity: 1, Price: price("10")}})
		assert.ErrorIs(t, err, ErrUnknownItem)
	})
}

func TestLineSubtotal(t *testing.T) {
	d := decimal.RequireFromString
	assert.True(t, d("59.97").Equal(LineSubtotal(3, d("19.99"))))
	assert.True(t, d("0.33").Equal(LineSubtotal(1, d("0.333"))))
}

func TestToOrderResponse(t *testing.T) {
	p1 := uuid.New()
	o := &Order{
		ID:     uuid.New(),
		Number: 7,
		Status: StatusPending,
		Total:  decimal.RequireFromString("170"),
		Items: []OrderItem{
			{ID: uuid.New(), ProductID: p1, Quantity: 2, Price: decimal.NewFromInt(50), Subtotal: decimal.NewFromInt(100)},
			{ID: uuid.New(), ProductID: p1, Quantity: 1, Price: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(100)},
		},
		Discounts: []Discount{{ID: uuid.New(), Code: "TEN", Amount: decimal.NewFromInt(30)}},
	}

	resp := ToOrderResponse(o)
	assert.Equal(t, 2, resp.QtyItems)
	assert.True(t, decimal.NewFromInt(200).Equal(resp.Subtotal))
	assert.True(t, decimal.NewFromInt(30).Equal(resp.Discount))
	assert.Len(t, resp.Items, 2)
	assert.Len(t, resp.Discounts, 1)

	listed := ToOrderResponse(&Order{ItemCount: 4, ItemsSubtotal: decimal.NewFromInt(80), DiscountSum: decimal.NewFromInt(5)})
	assert.Equal(t, 4, listed.QtyItems)
	assert.True(t, decimal.NewFromInt(80).Equal(listed.Subtotal))
	assert.Empty(t, listed.Items)
}
