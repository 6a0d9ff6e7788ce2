package shared

import "time"

// Asynq task types.
const (
	TypeOrderCreated     = "order:created"
	TypeDashboardRefresh = "dashboard:refresh"
)

// Asynq queues, highest priority first.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// OrderCreatedPayload is enqueued after an order commits. The worker turns
// it into a "new:order" event for downstream consumers.
type OrderCreatedPayload struct {
	OrderID   string    `json:"order_id"`
	Number    int64     `json:"number"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Total     string    `json:"total"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardRefreshPayload carries no data; the task recomputes and caches
// the admin dashboard stats.
type DashboardRefreshPayload struct{}
