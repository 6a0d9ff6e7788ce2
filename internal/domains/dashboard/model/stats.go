package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CacheKey = "dashboard:stats"
	CacheTTL = 10 * time.Minute
)

// Stats is the admin dashboard summary. Revenues is the sum of all order
// item subtotals minus the sum of all applied discounts.
type Stats struct {
	Users       int64           `json:"users"`
	Orders      int64           `json:"orders"`
	Products    int64           `json:"products"`
	Revenues    decimal.Decimal `json:"revenues"`
	GeneratedAt time.Time       `json:"generated_at"`
}
