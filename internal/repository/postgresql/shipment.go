package postgresql

import (
	"context"
	"time"

	"github.com/transcontinental/portal/internal/db"
	"github.com/transcontinental/portal/internal/repository"
	"github.com/transcontinental/portal/internal/storage"
)

const shipmentColumns = `id, client_email, client_name, containers_20ft, containers_40ft,
        bill_of_lading_files, packing_list_file, commercial_invoice_file, status, created_at, updated_at`

type ShipmentRepo struct {
	db db.DB
}

func NewShipmentRepo(db db.DB) storage.ShipmentRepository {
	return &ShipmentRepo{db: db}
}

func (r *ShipmentRepo) CreateTx(ctx context.Context, tx db.Tx, s *repository.Shipment) error {
	files := s.BillOfLadingFiles
	if files == nil {
		files = []string{}
	}
	_, err := tx.Exec(ctx, `
        INSERT INTO shipments (`+shipmentColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, s.ID, s.ClientEmail, s.ClientName, s.Containers20ft, s.Containers40ft,
		files, s.PackingListFile, s.CommercialInvoiceFile, s.Status, s.CreatedAt, s.UpdatedAt)
	return translateError(err)
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*repository.Shipment, error) {
	var s repository.Shipment
	err := r.db.Get(ctx, &s, "SELECT "+shipmentColumns+" FROM shipments WHERE id = $1", id)
	if err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

func (r *ShipmentRepo) GetByIDForUpdateTx(ctx context.Context, tx db.Tx, id string) (*repository.Shipment, error) {
	var s repository.Shipment
	err := tx.Get(ctx, &s, "SELECT "+shipmentColumns+" FROM shipments WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

// UpdateStatusTx moves a shipment from one status to another. It returns
// ErrObjectNotFound when no row with that id is in the from status.
func (r *ShipmentRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, id, from, to string, updatedAt time.Time) error {
	tag, err := tx.Exec(ctx, `
        UPDATE shipments
        SET status = $3, updated_at = $4
        WHERE id = $1 AND status = $2
    `, id, from, to, updatedAt)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *ShipmentRepo) DeleteTx(ctx context.Context, tx db.Tx, id string) (*repository.Shipment, error) {
	var s repository.Shipment
	err := tx.Get(ctx, &s, "DELETE FROM shipments WHERE id = $1 RETURNING "+shipmentColumns, id)
	if err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

// List returns shipments newest first, optionally only those of one owner.
func (r *ShipmentRepo) List(ctx context.Context, ownerEmail string) ([]*repository.Shipment, error) {
	query := "SELECT " + shipmentColumns + " FROM shipments"
	var args []interface{}
	if ownerEmail != "" {
		query += " WHERE client_email = $1"
		args = append(args, ownerEmail)
	}
	query += " ORDER BY created_at DESC, id DESC"

	var shipments []*repository.Shipment
	if err := r.db.Select(ctx, &shipments, query, args...); err != nil {
		return nil, translateError(err)
	}
	return shipments, nil
}

func (r *ShipmentRepo) ListByStatus(ctx context.Context, status string) ([]*repository.Shipment, error) {
	var shipments []*repository.Shipment
	err := r.db.Select(ctx, &shipments,
		"SELECT "+shipmentColumns+" FROM shipments WHERE status = $1 ORDER BY created_at DESC, id DESC", status)
	if err != nil {
		return nil, translateError(err)
	}
	return shipments, nil
}

func (r *ShipmentRepo) Recent(ctx context.Context, limit int) ([]*repository.Shipment, error) {
	var shipments []*repository.Shipment
	err := r.db.Select(ctx, &shipments,
		"SELECT "+shipmentColumns+" FROM shipments ORDER BY created_at DESC, id DESC LIMIT $1", limit)
	if err != nil {
		return nil, translateError(err)
	}
	return shipments, nil
}

// Summary counts shipments by status. An empty owner summarizes all of them.
func (r *ShipmentRepo) Summary(ctx context.Context, ownerEmail string) (*repository.ShipmentSummary, error) {
	var summary repository.ShipmentSummary
	err := r.db.Get(ctx, &summary, `
        SELECT
            COUNT(*)                                          AS total,
            COUNT(*) FILTER (WHERE status = 'UNDER_REVIEW')   AS under_review,
            COUNT(*) FILTER (WHERE status = 'ACCEPTED')       AS accepted,
            COUNT(*) FILTER (WHERE status = 'DECLINED')       AS declined,
            COALESCE(SUM(containers_20ft), 0)                 AS containers_20ft,
            COALESCE(SUM(containers_40ft), 0)                 AS containers_40ft
        FROM shipments
        WHERE $1 = '' OR client_email = $1
    `, ownerEmail)
	if err != nil {
		return nil, translateError(err)
	}
	return &summary, nil
}
