package queue

import (
	"github.com/hibiken/asynq"

	"shop-backend/internal/shared"
)

// NewClient returns the asynq client the API uses to enqueue tasks.
func NewClient(redisAddress string) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddress})
}

// Queues maps queue names to their asynq priority weights.
func Queues() map[string]int {
	return map[string]int{
		shared.QueueCritical: 6,
		shared.QueueDefault:  3,
		shared.QueueLow:      1,
	}
}
