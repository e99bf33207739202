package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/transcontinental/portal/internal/auth"
	"github.com/transcontinental/portal/internal/db"
	mock_db "github.com/transcontinental/portal/internal/db/mocks"
	"github.com/transcontinental/portal/internal/repository"
	mock_storage "github.com/transcontinental/portal/internal/storage/mocks"
)

var (
	fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	clientPrincipal = auth.Principal{
		ID:    "5b0c8f5e-7d4a-4c43-9d0b-3b8f4f0d2a11",
		Email: "acme@example.com",
		Kind:  auth.KindClient,
	}
	adminPrincipal = auth.Principal{
		ID:    "0e8c1c2a-54f4-4e55-8b7d-8e2fd1f5a001",
		Email: "ops@transcontinental.example",
		Kind:  auth.KindAdmin,
	}
	superPrincipal = auth.Principal{
		ID:         "0e8c1c2a-54f4-4e55-8b7d-8e2fd1f5a002",
		Email:      "root@transcontinental.example",
		Kind:       auth.KindAdmin,
		SuperAdmin: true,
	}
)

const shipmentID = "8a3e2b4c-1f5d-4e6a-9b7c-0d1e2f3a4b5c"

type fixture struct {
	ctx context.Context

	db       *mock_db.MockDB
	tx       *mock_db.MockTx
	shipRepo *mock_storage.MockShipmentRepository
	clients  *mock_storage.MockClientRepository
	admins   *mock_storage.MockAdminRepository
	outbox   *mock_storage.MockOutboxTaskRepository
	pending  *mock_storage.MockPendingCache
	files    *mock_storage.MockFileChecker

	storage *Storage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		ctx:      context.Background(),
		db:       mock_db.NewMockDB(ctrl),
		tx:       mock_db.NewMockTx(ctrl),
		shipRepo: mock_storage.NewMockShipmentRepository(ctrl),
		clients:  mock_storage.NewMockClientRepository(ctrl),
		admins:   mock_storage.NewMockAdminRepository(ctrl),
		outbox:   mock_storage.NewMockOutboxTaskRepository(ctrl),
		pending:  mock_storage.NewMockPendingCache(ctrl),
		files:    mock_storage.NewMockFileChecker(ctrl),
	}
	f.storage = NewStorage(f.db, f.shipRepo, f.clients, f.admins, f.outbox,
		WithFileChecker(f.files),
		WithPendingCache(f.pending),
		WithEventTopic("test_events"),
	)
	f.storage.timeNow = func() time.Time { return fixedTime }
	f.storage.newID = func() string { return shipmentID }
	return f
}

// expectCommit sets up a transaction that commits after writing one event of
// the given type.
func (f *fixture) expectCommit(t *testing.T, eventType string) {
	f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
	f.outbox.EXPECT().CreateTx(f.ctx, f.tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ db.Tx, task *repository.OutboxTask) error {
			assert.Equal(t, "test_events", task.Topic)
			assert.Equal(t, repository.TaskStatusCreated, task.Status)

			var payload repository.EventPayload
			require.NoError(t, json.Unmarshal(task.Payload, &payload))
			assert.Equal(t, eventType, payload.Type)
			return nil
		})
	f.tx.EXPECT().Commit(f.ctx).Return(nil)
}

// expectActiveAdmin confirms that the admin behind p still exists.
func (f *fixture) expectActiveAdmin(p auth.Principal) {
	f.admins.EXPECT().GetByID(f.ctx, p.ID).Return(&repository.Admin{ID: p.ID, Email: p.Email}, nil)
}

func (f *fixture) expectSessionClient(row *repository.Client) {
	f.clients.EXPECT().GetByID(f.ctx, row.ID).Return(row, nil)
}

func TestWithTx(t *testing.T) {
	t.Run("begin error", func(t *testing.T) {
		f := newFixture(t)
		f.db.EXPECT().BeginTx(f.ctx).Return(nil, errors.New("db error"))

		err := f.storage.withTx(f.ctx, func(db.Tx) error { return nil })

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to begin transaction")
	})

	t.Run("rollback on error", func(t *testing.T) {
		f := newFixture(t)
		f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(f.ctx).Return(nil)

		expected := errors.New("boom")
		err := f.storage.withTx(f.ctx, func(db.Tx) error { return expected })

		assert.ErrorIs(t, err, expected)
	})

	t.Run("commit error", func(t *testing.T) {
		f := newFixture(t)
		f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
		f.tx.EXPECT().Commit(f.ctx).Return(errors.New("connection reset"))

		err := f.storage.withTx(f.ctx, func(db.Tx) error { return nil })

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to commit transaction")
	})
}

func TestAuthorization(t *testing.T) {
	f := newFixture(t)
	anonymous := auth.Principal{}

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"anonymous create", func() error {
			_, err := f.storage.CreateShipment(f.ctx, anonymous, CreateShipmentInput{})
			return err
		}, ErrUnauthorized},
		{"anonymous list", func() error {
			_, err := f.storage.ListShipments(f.ctx, anonymous, ShipmentFilter{})
			return err
		}, ErrUnauthorized},
		{"client updates status", func() error {
			_, err := f.storage.UpdateShipmentStatus(f.ctx, clientPrincipal, shipmentID, StatusAccepted)
			return err
		}, ErrForbidden},
		{"client deletes shipment", func() error {
			return f.storage.DeleteShipment(f.ctx, clientPrincipal, shipmentID)
		}, ErrForbidden},
		{"anonymous deletes shipment", func() error {
			return f.storage.DeleteShipment(f.ctx, anonymous, shipmentID)
		}, ErrUnauthorized},
		{"client lists clients", func() error {
			_, err := f.storage.ListClients(f.ctx, clientPrincipal)
			return err
		}, ErrForbidden},
		{"admin reads profile", func() error {
			_, err := f.storage.GetProfile(f.ctx, adminPrincipal)
			return err
		}, ErrForbidden},
		{"plain admin creates admin", func() error {
			_, err := f.storage.CreateAdmin(f.ctx, adminPrincipal, AdminInput{})
			return err
		}, ErrForbidden},
		{"client pending queue", func() error {
			_, err := f.storage.PendingShipments(f.ctx, clientPrincipal)
			return err
		}, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}
}
