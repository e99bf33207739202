package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "github.com/transcontinental/portal/internal/db/mocks"
	"github.com/transcontinental/portal/internal/repository"
)

func TestOutboxTaskRepo_CreateTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := NewOutboxTaskRepo()

	task := &repository.OutboxTask{
		Payload: json.RawMessage(`{"type":"shipment.created"}`),
		Topic:   "portal_events",
	}
	mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(),
		gomock.Any(),
		gomock.Eq(repository.TaskStatusCreated),
		gomock.Eq(task.Payload),
		gomock.Eq("portal_events"),
		gomock.Any(),
		gomock.Any(),
	).Return(pgconn.CommandTag("INSERT 0 1"), nil)

	require.NoError(t, repo.CreateTx(context.Background(), mockTx, task))
	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestOutboxTaskRepo_GetProcessableTasksTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTx := mock_database.NewMockTx(ctrl)
	repo := NewOutboxTaskRepo()

	mockTx.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(),
		gomock.Eq(repository.TaskStatusCreated),
		gomock.Eq(repository.TaskStatusFailed),
		gomock.Eq(3),
		gomock.Eq(20),
	).DoAndReturn(func(_ context.Context, dest *[]*repository.OutboxTask, query string, _ ...interface{}) error {
		assert.Contains(t, query, "FOR UPDATE SKIP LOCKED")
		*dest = []*repository.OutboxTask{{ID: uuid.New()}}
		return nil
	})

	tasks, err := repo.GetProcessableTasksTx(context.Background(), mockTx, 20, 3)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestOutboxTaskRepo_UpdateTaskStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	now := time.Now().UTC()

	t.Run("done", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := NewOutboxTaskRepo()

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(),
			gomock.Eq(id), gomock.Eq(repository.TaskStatusDone), gomock.Eq(1), gomock.Nil(), gomock.Eq(&now),
		).Return(pgconn.CommandTag("UPDATE 1"), nil)

		assert.NoError(t, repo.UpdateTaskStatus(ctx, mockDB, id, repository.TaskStatusDone, 1, nil, &now))
	})

	t.Run("missing task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := NewOutboxTaskRepo()

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), anyArgs(5)...).Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.UpdateTaskStatusTx(ctx, mockTx, id, repository.TaskStatusProcessing, 0, nil, nil)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := NewOutboxTaskRepo()

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), anyArgs(5)...).Return(nil, errors.New("database error"))

		err := repo.UpdateTaskStatus(ctx, mockDB, id, repository.TaskStatusFailed, 1, nil, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update outbox task status")
	})
}
