package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/transcontinental/portal/internal/auth"
	"github.com/transcontinental/portal/internal/db"
	"github.com/transcontinental/portal/internal/metrics"
	"github.com/transcontinental/portal/internal/repository"
)

const (
	eventShipmentCreated       = "shipment.created"
	eventShipmentStatusChanged = "shipment.status_changed"
	eventShipmentDeleted       = "shipment.deleted"
)

// CreateShipment submits a shipment for review. Clients create shipments for
// themselves; admins must name the owning client.
func (s *Storage) CreateShipment(ctx context.Context, p auth.Principal, in CreateShipmentInput) (*Shipment, error) {
	if err := requireAuthenticated(p); err != nil {
		return nil, err
	}

	in.normalize()
	if !p.IsClient() && in.OwnerEmail == "" {
		return nil, fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkFiles(ctx, in.Files); err != nil {
		return nil, err
	}

	owner, err := s.shipmentOwner(ctx, p, in.OwnerEmail)
	if err != nil {
		return nil, err
	}

	clientName := owner.CompanyName
	if clientName == "" {
		clientName = owner.Name
	}
	ownerEmail := owner.Email
	now := s.timeNow()
	row := &repository.Shipment{
		ID:                    s.newID(),
		ClientEmail:           &ownerEmail,
		ClientName:            clientName,
		Containers20ft:        in.Containers20ft,
		Containers40ft:        in.Containers40ft,
		BillOfLadingFiles:     in.Files.BillOfLadingFiles,
		PackingListFile:       in.Files.PackingListFile,
		CommercialInvoiceFile: in.Files.CommercialInvoiceFile,
		Status:                string(StatusUnderReview),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	shipment := toShipment(row)

	err = s.withTx(ctx, func(tx db.Tx) error {
		if err := s.shipmentRepo.CreateTx(ctx, tx, row); err != nil {
			if errors.Is(err, repository.ErrForeignKey) {
				return fmt.Errorf("%w: %s", ErrOwnerNotFound, ownerEmail)
			}
			return fmt.Errorf("failed to create shipment: %w", err)
		}
		return s.enqueueEvent(ctx, tx, p, event{
			Type:       eventShipmentCreated,
			EntityType: "shipment",
			EntityID:   row.ID,
			NewStatus:  StatusUnderReview,
			Data:       shipment,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	if s.pending != nil {
		s.pending.Set(row)
	}
	metrics.ShipmentsCreatedTotal.Inc()
	s.logger.Info("shipment created",
		zap.String("shipment_id", row.ID),
		zap.String("client_email", ownerEmail),
		zap.String("actor", p.Email),
	)

	return &shipment, nil
}

// shipmentOwner resolves the client a new shipment belongs to. A client always
// owns its own shipments; the email in its token may be stale, so the row is
// looked up by id.
func (s *Storage) shipmentOwner(ctx context.Context, p auth.Principal, email string) (*repository.Client, error) {
	if p.IsClient() {
		owner, err := s.sessionClient(ctx, p)
		if err != nil {
			return nil, err
		}
		if email != "" && email != owner.Email {
			return nil, fmt.Errorf("%w: clients may only create their own shipments", ErrForbidden)
		}
		return owner, nil
	}

	owner, err := s.clientRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOwnerNotFound, email)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return owner, nil
}

func (s *Storage) checkFiles(ctx context.Context, refs FileRefs) error {
	if s.files == nil {
		return nil
	}
	for _, ref := range refs.all() {
		ok, err := s.files.Exists(ctx, ref)
		if err != nil {
			return fmt.Errorf("failed to check file %s: %w", ref, err)
		}
		if !ok {
			return fmt.Errorf("%w: unknown file reference %s", ErrInvalidInput, ref)
		}
	}
	return nil
}

// ListShipments returns shipments newest first. A client always sees only its
// own shipments whatever filter it passes.
func (s *Storage) ListShipments(ctx context.Context, p auth.Principal, filter ShipmentFilter) ([]Shipment, error) {
	if err := requireAuthenticated(p); err != nil {
		return nil, err
	}

	owner, err := s.ownerScope(ctx, p, filter.OwnerEmail)
	if err != nil {
		return nil, err
	}

	rows, err := s.shipmentRepo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	return toShipments(rows), nil
}

// GetShipment returns one shipment. Shipments of other clients are reported as
// not found.
func (s *Storage) GetShipment(ctx context.Context, p auth.Principal, id string) (*Shipment, error) {
	if err := requireAuthenticated(p); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ErrNotFound
	}

	row, err := s.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}
	if p.IsClient() {
		owner, err := s.ownerScope(ctx, p, "")
		if err != nil {
			return nil, err
		}
		if row.ClientEmail == nil || *row.ClientEmail != owner {
			return nil, ErrNotFound
		}
	}

	shipment := toShipment(row)
	return &shipment, nil
}

// UpdateShipmentStatus records a review decision. The row is locked for the
// duration of the check so that of two racing decisions only the first wins.
func (s *Storage) UpdateShipmentStatus(ctx context.Context, p auth.Principal, id string, next Status) (*Shipment, error) {
	if err := s.requireActiveAdmin(ctx, p); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ErrNotFound
	}

	var (
		row  *repository.Shipment
		prev Status
	)
	err := s.withTx(ctx, func(tx db.Tx) error {
		var err error
		row, err = s.shipmentRepo.GetByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get shipment: %w", err)
		}

		prev = Status(row.Status)
		if !prev.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, prev, next)
		}

		now := s.timeNow()
		if err := s.shipmentRepo.UpdateStatusTx(ctx, tx, id, string(prev), string(next), now); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return fmt.Errorf("%w: %s changed concurrently", ErrInvalidTransition, id)
			}
			return fmt.Errorf("failed to update shipment status: %w", err)
		}
		row.Status = string(next)
		row.UpdatedAt = now

		return s.enqueueEvent(ctx, tx, p, event{
			Type:       eventShipmentStatusChanged,
			EntityType: "shipment",
			EntityID:   id,
			OldStatus:  prev,
			NewStatus:  next,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	if s.pending != nil {
		s.pending.Delete(id)
	}
	metrics.ShipmentStatusTransitionsTotal.WithLabelValues(string(next)).Inc()
	s.logger.Info("shipment status changed",
		zap.String("shipment_id", id),
		zap.String("old_status", string(prev)),
		zap.String("new_status", string(next)),
		zap.String("actor", p.Email),
	)

	shipment := toShipment(row)
	return &shipment, nil
}

// DeleteShipment removes a shipment permanently. Uploaded files it refers to
// are kept.
func (s *Storage) DeleteShipment(ctx context.Context, p auth.Principal, id string) error {
	if err := s.requireActiveAdmin(ctx, p); err != nil {
		return err
	}
	if !validID(id) {
		return ErrNotFound
	}

	err := s.withTx(ctx, func(tx db.Tx) error {
		row, err := s.shipmentRepo.DeleteTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to delete shipment: %w", err)
		}
		return s.enqueueEvent(ctx, tx, p, event{
			Type:       eventShipmentDeleted,
			EntityType: "shipment",
			EntityID:   id,
			OldStatus:  Status(row.Status),
			Data:       toShipment(row),
		}, s.timeNow())
	})
	if err != nil {
		return err
	}

	if s.pending != nil {
		s.pending.Delete(id)
	}
	metrics.ShipmentsDeletedTotal.Inc()
	s.logger.Info("shipment deleted", zap.String("shipment_id", id), zap.String("actor", p.Email))

	return nil
}

// ShipmentSummary aggregates counts for a dashboard. Admins may pass an empty
// owner to summarize every shipment.
func (s *Storage) ShipmentSummary(ctx context.Context, p auth.Principal, ownerEmail string) (*ShipmentSummary, error) {
	if err := requireAuthenticated(p); err != nil {
		return nil, err
	}

	owner, err := s.ownerScope(ctx, p, ownerEmail)
	if err != nil {
		return nil, err
	}

	row, err := s.shipmentRepo.Summary(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize shipments: %w", err)
	}

	return &ShipmentSummary{
		Total:           row.Total,
		UnderReview:     row.UnderReview,
		Accepted:        row.Accepted,
		Declined:        row.Declined,
		Containers20ft:  row.Containers20ft,
		Containers40ft:  row.Containers40ft,
		TotalContainers: row.Containers20ft + row.Containers40ft,
	}, nil
}

// PendingShipments is the admin review queue.
func (s *Storage) PendingShipments(ctx context.Context, p auth.Principal) ([]Shipment, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	if s.pending != nil {
		return toShipments(s.pending.List()), nil
	}

	rows, err := s.shipmentRepo.ListByStatus(ctx, string(StatusUnderReview))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending shipments: %w", err)
	}
	return toShipments(rows), nil
}

// RecentShipments returns the newest shipments for the activity feed.
func (s *Storage) RecentShipments(ctx context.Context, limit int) ([]Shipment, error) {
	rows, err := s.shipmentRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent shipments: %w", err)
	}
	return toShipments(rows), nil
}
