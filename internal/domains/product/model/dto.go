package model

import (
	"errors"
	"fmt"
	"hash/crc32"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const CachePattern = "products:*"

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageID     *uuid.UUID      `json:"image_id"`
}

func (r *CreateProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.NilOrNotEmpty),
		validation.Field(&r.Price, validation.By(nonNegative)),
	)
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageID     *uuid.UUID       `json:"image_id"`
}

func (r *UpdateProductRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.By(nonNegative)),
	)
}

func (r *UpdateProductRequest) Apply(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.ImageID != nil {
		p.ImageID = r.ImageID
	}
}

func nonNegative(value interface{}) error {
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
		return errors.New("must be no less than 0")
	}
	return nil
}

type ListProductsFilter struct {
	Name  string
	Page  int
	Limit int
}

func DetailCacheKey(id uuid.UUID) string {
	return "products:detail:" + id.String()
}

// ListCacheKey hashes the filter so arbitrary search text keeps keys short.
func ListCacheKey(f *ListProductsFilter) string {
	raw := fmt.Sprintf("%s|%d|%d", strings.ToLower(f.Name), f.Page, f.Limit)
	return fmt.Sprintf("products:list:%08x", crc32.ChecksumIEEE([]byte(raw)))
}
