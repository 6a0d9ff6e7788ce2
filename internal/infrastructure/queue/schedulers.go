package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"shop-backend/internal/shared"
	"shop-backend/pkg/logger"
)

// DashboardRefreshSpec runs inside the dashboard cache TTL so the cached
// stats never expire under normal operation.
const DashboardRefreshSpec = "*/5 * * * *"

// PeriodicJob is one cron entry registered with the scheduler.
type PeriodicJob struct {
	Name     string
	Spec     string
	TaskType string
	Payload  interface{}
	Opts     []asynq.Option
}

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)
	return &Scheduler{scheduler: scheduler}
}

// PeriodicJobs lists every scheduled task the worker runs.
func PeriodicJobs() []PeriodicJob {
	return []PeriodicJob{
		{
			Name:     "dashboard refresh",
			Spec:     DashboardRefreshSpec,
			TaskType: shared.TypeDashboardRefresh,
			Payload:  shared.DashboardRefreshPayload{},
			Opts: []asynq.Option{
				asynq.Queue(shared.QueueLow),
				asynq.MaxRetry(1),
				asynq.Timeout(time.Minute),
				// Drop the task if an earlier one is still pending.
				asynq.Unique(4 * time.Minute),
			},
		},
	}
}

func (s *Scheduler) RegisterJobs() error {
	for _, job := range PeriodicJobs() {
		payload, err := json.Marshal(job.Payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", job.Name, err)
		}

		entryID, err := s.scheduler.Register(job.Spec, asynq.NewTask(job.TaskType, payload), job.Opts...)
		if err != nil {
			return fmt.Errorf("register %s: %w", job.Name, err)
		}

		logger.Info("scheduled job registered", map[string]interface{}{
			"job":      job.Name,
			"spec":     job.Spec,
			"entry_id": entryID,
		})
	}
	return nil
}

// Start blocks until Shutdown is called.
func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
