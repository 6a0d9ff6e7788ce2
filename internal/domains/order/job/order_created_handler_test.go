package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/shared"
)

type recordingPublisher struct {
	got []shared.OrderCreatedPayload
	err error
}

func (p *recordingPublisher) PublishNewOrder(_ context.Context, order shared.OrderCreatedPayload) error {
	if p.err != nil {
		return p.err
	}
	p.got = append(p.got, order)
	return nil
}

func TestOrderCreatedHandler_ProcessTask(t *testing.T) {
	body, err := json.Marshal(shared.OrderCreatedPayload{OrderID: "o-9", Number: 9, Total: "200"})
	require.NoError(t, err)

	pub := &recordingPublisher{}
	h := NewOrderCreatedHandler(pub)

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeOrderCreated, body)))
	require.Len(t, pub.got, 1)
	assert.Equal(t, int64(9), pub.got[0].Number)
}

func TestOrderCreatedHandler_Failures(t *testing.T) {
	bad := NewOrderCreatedHandler(&recordingPublisher{})
	err := bad.ProcessTask(context.Background(), asynq.NewTask(shared.TypeOrderCreated, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	body, _ := json.Marshal(shared.OrderCreatedPayload{OrderID: "o-1"})
	down := NewOrderCreatedHandler(&recordingPublisher{err: errors.New("broker down")})
	err = down.ProcessTask(context.Background(), asynq.NewTask(shared.TypeOrderCreated, body))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
