//go:generate mockgen -source ./repositories.go -destination=./mocks/repositories.go -package=mock_storage
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/transcontinental/portal/internal/db"
	"github.com/transcontinental/portal/internal/repository"
)

type ShipmentRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, shipment *repository.Shipment) error
	GetByID(ctx context.Context, id string) (*repository.Shipment, error)
	GetByIDForUpdateTx(ctx context.Context, tx db.Tx, id string) (*repository.Shipment, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, id, from, to string, updatedAt time.Time) error
	DeleteTx(ctx context.Context, tx db.Tx, id string) (*repository.Shipment, error)
	List(ctx context.Context, ownerEmail string) ([]*repository.Shipment, error)
	ListByStatus(ctx context.Context, status string) ([]*repository.Shipment, error)
	Recent(ctx context.Context, limit int) ([]*repository.Shipment, error)
	Summary(ctx context.Context, ownerEmail string) (*repository.ShipmentSummary, error)
}

type ClientRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, client *repository.Client) error
	GetByEmail(ctx context.Context, email string) (*repository.Client, error)
	GetByID(ctx context.Context, id string) (*repository.Client, error)
	GetByIDForUpdateTx(ctx context.Context, tx db.Tx, id string) (*repository.Client, error)
	UpdateTx(ctx context.Context, tx db.Tx, client *repository.Client) error
	DeleteTx(ctx context.Context, tx db.Tx, id string) (*repository.Client, error)
	List(ctx context.Context) ([]*repository.Client, error)
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]*repository.Client, error)
}

type AdminRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, admin *repository.Admin) error
	GetByEmail(ctx context.Context, email string) (*repository.Admin, error)
	GetByID(ctx context.Context, id string) (*repository.Admin, error)
	GetByIDForUpdateTx(ctx context.Context, tx db.Tx, id string) (*repository.Admin, error)
	UpdateTx(ctx context.Context, tx db.Tx, admin *repository.Admin) error
	DeleteTx(ctx context.Context, tx db.Tx, id string) (*repository.Admin, error)
	SuperAdminIDsForUpdateTx(ctx context.Context, tx db.Tx) ([]string, error)
	List(ctx context.Context) ([]*repository.Admin, error)
	Recent(ctx context.Context, limit int) ([]*repository.Admin, error)
}

type OutboxTaskRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessableTasksTx(ctx context.Context, tx db.Tx, limit, maxAttempts int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}

// PendingCache holds shipments waiting for review.
type PendingCache interface {
	Set(shipment *repository.Shipment)
	Delete(id string)
	List() []*repository.Shipment
}

// FileChecker confirms that a file reference was produced by file intake.
type FileChecker interface {
	Exists(ctx context.Context, ref string) (bool, error)
}
