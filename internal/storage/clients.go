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
	eventClientSignedUp = "client.signed_up"
	eventClientUpdated  = "client.updated"
	eventClientDeleted  = "client.deleted"
)

func (s *Storage) SignUp(ctx context.Context, in SignUpInput) (*Client, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	_, err := s.clientRepo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: email %s is already registered", ErrConflict, in.Email)
	case !errors.Is(err, repository.ErrObjectNotFound):
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	hash, err := auth.HashPassword(in.Password, auth.ClientPasswordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.timeNow()
	row := &repository.Client{
		ID:          s.newID(),
		Email:       in.Email,
		Name:        in.Name,
		CompanyName: in.CompanyName,
		Password:    hash,
		Phone:       in.Phone,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		PostalCode:  in.PostalCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	client := toClient(row)
	actor := auth.Principal{ID: row.ID, Email: row.Email, Kind: auth.KindClient}

	err = s.withTx(ctx, func(tx db.Tx) error {
		if err := s.clientRepo.CreateTx(ctx, tx, row); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: email %s is already registered", ErrConflict, in.Email)
			}
			return fmt.Errorf("failed to create client: %w", err)
		}
		return s.enqueueEvent(ctx, tx, actor, event{
			Type:       eventClientSignedUp,
			EntityType: "client",
			EntityID:   row.ID,
			Data:       client,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.ClientSignupsTotal.Inc()
	s.logger.Info("client signed up", zap.String("client_id", row.ID), zap.String("email", row.Email))

	return &client, nil
}

// AuthenticateClient checks credentials. Unknown emails and wrong passwords
// are reported the same way.
func (s *Storage) AuthenticateClient(ctx context.Context, email, password string) (*Client, error) {
	row, err := s.clientRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if !auth.CheckPassword(row.Password, password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	client := toClient(row)
	return &client, nil
}

// GetProfile returns the calling client's own account.
func (s *Storage) GetProfile(ctx context.Context, p auth.Principal) (*Client, error) {
	if err := requireClient(p); err != nil {
		return nil, err
	}

	row, err := s.getClient(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	client := toClient(row)
	return &client, nil
}

// UpdateProfile changes the caller's own contact details. The email address
// is not editable here.
func (s *Storage) UpdateProfile(ctx context.Context, p auth.Principal, in ProfileInput) (*Client, error) {
	if err := requireClient(p); err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	row, err := s.updateClient(ctx, p, p.ID, func(row *repository.Client) {
		row.Name = in.Name
		row.CompanyName = in.CompanyName
		row.Phone = in.Phone
		row.Address = in.Address
		row.City = in.City
		row.Country = in.Country
		row.PostalCode = in.PostalCode
	})
	if err != nil {
		return nil, err
	}

	client := toClient(row)
	return &client, nil
}

func (s *Storage) ListClients(ctx context.Context, p auth.Principal) ([]Client, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	rows, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	clients := make([]Client, 0, len(rows))
	for _, r := range rows {
		clients = append(clients, toClient(r))
	}
	return clients, nil
}

func (s *Storage) CountClients(ctx context.Context, p auth.Principal) (int, error) {
	if err := requireAdmin(p); err != nil {
		return 0, err
	}

	n, err := s.clientRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return n, nil
}

// UpdateClient lets an admin correct a client's identity. A changed email is
// carried over to the client's shipments by the database.
func (s *Storage) UpdateClient(ctx context.Context, p auth.Principal, id string, in ClientUpdateInput) (*Client, error) {
	if err := s.requireActiveAdmin(ctx, p); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ErrNotFound
	}

	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	row, err := s.updateClient(ctx, p, id, func(row *repository.Client) {
		row.Email = in.Email
		row.Name = in.Name
		row.CompanyName = in.CompanyName
	})
	if err != nil {
		return nil, err
	}

	client := toClient(row)
	return &client, nil
}

// DeleteClient removes a client account. Its shipments stay, keeping the
// denormalized company name but losing the owner reference.
func (s *Storage) DeleteClient(ctx context.Context, p auth.Principal, id string) error {
	if err := s.requireActiveAdmin(ctx, p); err != nil {
		return err
	}
	if !validID(id) {
		return ErrNotFound
	}

	err := s.withTx(ctx, func(tx db.Tx) error {
		row, err := s.clientRepo.DeleteTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to delete client: %w", err)
		}
		return s.enqueueEvent(ctx, tx, p, event{
			Type:       eventClientDeleted,
			EntityType: "client",
			EntityID:   id,
			Data:       toClient(row),
		}, s.timeNow())
	})
	if err != nil {
		return err
	}

	s.logger.Info("client deleted", zap.String("client_id", id), zap.String("actor", p.Email))
	return nil
}

// RecentClients returns the newest client accounts for the activity feed.
func (s *Storage) RecentClients(ctx context.Context, limit int) ([]Client, error) {
	rows, err := s.clientRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent clients: %w", err)
	}
	clients := make([]Client, 0, len(rows))
	for _, r := range rows {
		clients = append(clients, toClient(r))
	}
	return clients, nil
}

func (s *Storage) getClient(ctx context.Context, id string) (*repository.Client, error) {
	row, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return row, nil
}

// updateClient applies change to the client row locked inside the
// transaction and stores the result.
func (s *Storage) updateClient(ctx context.Context, actor auth.Principal, id string, change func(*repository.Client)) (*repository.Client, error) {
	var row *repository.Client
	err := s.withTx(ctx, func(tx db.Tx) error {
		var err error
		row, err = s.clientRepo.GetByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get client: %w", err)
		}

		change(row)
		row.UpdatedAt = s.timeNow()

		if err := s.clientRepo.UpdateTx(ctx, tx, row); err != nil {
			switch {
			case errors.Is(err, repository.ErrObjectNotFound):
				return ErrNotFound
			case errors.Is(err, repository.ErrDuplicate):
				return fmt.Errorf("%w: email %s is already registered", ErrConflict, row.Email)
			}
			return fmt.Errorf("failed to update client: %w", err)
		}
		return s.enqueueEvent(ctx, tx, actor, event{
			Type:       eventClientUpdated,
			EntityType: "client",
			EntityID:   row.ID,
			Data:       toClient(row),
		}, row.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}
