package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	mock_db "github.com/transcontinental/portal/internal/db/mocks"
	"github.com/transcontinental/portal/internal/repository"
	mock_storage "github.com/transcontinental/portal/internal/storage/mocks"
)

type recordingProducer struct {
	mu     sync.Mutex
	sent   []string
	err    error
	closed bool
}

func (p *recordingProducer) SendMessage(_ context.Context, topic string, key []byte, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, topic+"/"+string(key))
	return nil
}

func (p *recordingProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func newTestPublisher(t *testing.T, producer Producer) (*Publisher, *mock_db.MockDB, *mock_db.MockTx, *mock_storage.MockOutboxTaskRepository) {
	ctrl := gomock.NewController(t)
	mockDB := mock_db.NewMockDB(ctrl)
	mockTx := mock_db.NewMockTx(ctrl)
	repo := mock_storage.NewMockOutboxTaskRepository(ctrl)

	p := NewPublisher(mockDB, repo, producer, PublisherConfig{
		PollInterval: 5 * time.Millisecond,
		BatchSize:    10,
		MaxAttempts:  3,
	}, nil)
	return p, mockDB, mockTx, repo
}

func TestPublisher_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks done", func(t *testing.T) {
		producer := &recordingProducer{}
		p, mockDB, mockTx, repo := newTestPublisher(t, producer)
		fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		p.timeNow = func() time.Time { return fixed }

		task := &repository.OutboxTask{ID: uuid.New(), Topic: "portal_events", Payload: []byte(`{}`)}

		mockDB.EXPECT().BeginTx(ctx).Return(mockTx, nil)
		repo.EXPECT().GetProcessableTasksTx(ctx, mockTx, 10, 3).Return([]*repository.OutboxTask{task}, nil)
		repo.EXPECT().UpdateTaskStatusTx(ctx, mockTx, task.ID, repository.TaskStatusProcessing, 0, nil, nil).Return(nil)
		mockTx.EXPECT().Commit(ctx).Return(nil)
		repo.EXPECT().UpdateTaskStatus(ctx, mockDB, task.ID, repository.TaskStatusDone, 0, nil, &fixed).Return(nil)

		require.NoError(t, p.processBatch(ctx))
		assert.Equal(t, []string{"portal_events/" + task.ID.String()}, producer.sent)
	})

	t.Run("send failure marks failed with attempt", func(t *testing.T) {
		producer := &recordingProducer{err: errors.New("broker unavailable")}
		p, mockDB, mockTx, repo := newTestPublisher(t, producer)

		task := &repository.OutboxTask{ID: uuid.New(), Topic: "portal_events", Attempts: 2}

		mockDB.EXPECT().BeginTx(ctx).Return(mockTx, nil)
		repo.EXPECT().GetProcessableTasksTx(ctx, mockTx, 10, 3).Return([]*repository.OutboxTask{task}, nil)
		repo.EXPECT().UpdateTaskStatusTx(ctx, mockTx, task.ID, repository.TaskStatusProcessing, 2, nil, nil).Return(nil)
		mockTx.EXPECT().Commit(ctx).Return(nil)
		repo.EXPECT().UpdateTaskStatus(ctx, mockDB, task.ID, repository.TaskStatusFailed, 3, gomock.Any(), nil).
			DoAndReturn(func(_ context.Context, _ any, _ uuid.UUID, _ repository.TaskStatus, _ int, lastError *string, _ *time.Time) error {
				require.NotNil(t, lastError)
				assert.Equal(t, "broker unavailable", *lastError)
				return nil
			})

		assert.NoError(t, p.processBatch(ctx))
	})

	t.Run("fetch error rolls back", func(t *testing.T) {
		p, mockDB, mockTx, repo := newTestPublisher(t, &recordingProducer{})

		mockDB.EXPECT().BeginTx(ctx).Return(mockTx, nil)
		repo.EXPECT().GetProcessableTasksTx(ctx, mockTx, 10, 3).Return(nil, errors.New("db error"))
		mockTx.EXPECT().Rollback(ctx).Return(nil)

		err := p.processBatch(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get processable tasks")
	})

	t.Run("empty batch", func(t *testing.T) {
		p, mockDB, mockTx, repo := newTestPublisher(t, &recordingProducer{})

		mockDB.EXPECT().BeginTx(ctx).Return(mockTx, nil)
		repo.EXPECT().GetProcessableTasksTx(ctx, mockTx, 10, 3).Return(nil, nil)
		mockTx.EXPECT().Commit(ctx).Return(nil)

		assert.NoError(t, p.processBatch(ctx))
	})
}

func TestPublisher_RunStopsOnShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	producer := &recordingProducer{}
	p, mockDB, mockTx, repo := newTestPublisher(t, producer)

	mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil).AnyTimes()
	repo.EXPECT().GetProcessableTasksTx(gomock.Any(), mockTx, 10, 3).Return(nil, nil).AnyTimes()
	mockTx.EXPECT().Commit(gomock.Any()).Return(nil).AnyTimes()

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	p.Shutdown()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
	assert.True(t, producer.closed)
}

func TestPublisher_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	p, _, _, _ := newTestPublisher(t, &recordingProducer{})
	p.config.PollInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}
