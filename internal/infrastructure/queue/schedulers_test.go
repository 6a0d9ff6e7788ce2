package queue

import (
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/shared"
)

func TestPeriodicJobs(t *testing.T) {
	jobs := PeriodicJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, shared.TypeDashboardRefresh, jobs[0].TaskType)

	for _, job := range jobs {
		_, err := cron.ParseStandard(job.Spec)
		assert.NoError(t, err, job.Name)
	}
}

func TestQueues(t *testing.T) {
	q := Queues()
	assert.Greater(t, q[shared.QueueCritical], q[shared.QueueDefault])
	assert.Greater(t, q[shared.QueueDefault], q[shared.QueueLow])
}
