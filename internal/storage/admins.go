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
	eventAdminCreated = "admin.created"
	eventAdminUpdated = "admin.updated"
	eventAdminDeleted = "admin.deleted"
)

var systemPrincipal = auth.Principal{Email: "system"}

// AuthenticateAdmin checks admin credentials.
func (s *Storage) AuthenticateAdmin(ctx context.Context, email, password string) (*Admin, error) {
	row, err := s.adminRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	if !auth.CheckPassword(row.Password, password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	admin := toAdmin(row)
	return &admin, nil
}

func (s *Storage) ListAdmins(ctx context.Context, p auth.Principal) ([]Admin, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	rows, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return toAdmins(rows), nil
}

// CreateAdmin adds an admin account. Only super admins may call it.
func (s *Storage) CreateAdmin(ctx context.Context, p auth.Principal, in AdminInput) (*Admin, error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.validate(true); err != nil {
		return nil, err
	}
	return s.createAdmin(ctx, p, in)
}

func (s *Storage) createAdmin(ctx context.Context, actor auth.Principal, in AdminInput) (*Admin, error) {
	_, err := s.adminRepo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: admin %s already exists", ErrConflict, in.Email)
	case !errors.Is(err, repository.ErrObjectNotFound):
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	hash, err := auth.HashPassword(in.Password, auth.AdminPasswordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.timeNow()
	row := &repository.Admin{
		ID:           s.newID(),
		Email:        in.Email,
		Name:         in.Name,
		Password:     hash,
		IsSuperAdmin: in.IsSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	admin := toAdmin(row)

	err = s.withTx(ctx, func(tx db.Tx) error {
		if actor.Authenticated() {
			superIDs, err := s.adminRepo.SuperAdminIDsForUpdateTx(ctx, tx)
			if err != nil {
				return fmt.Errorf("failed to lock super admins: %w", err)
			}
			if err := requireLockedSuperAdmin(actor, superIDs); err != nil {
				return err
			}
		}
		if err := s.adminRepo.CreateTx(ctx, tx, row); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: admin %s already exists", ErrConflict, in.Email)
			}
			return fmt.Errorf("failed to create admin: %w", err)
		}
		return s.enqueueEvent(ctx, tx, actor, event{
			Type:       eventAdminCreated,
			EntityType: "admin",
			EntityID:   row.ID,
			Data:       admin,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	metrics.AdminAccountsTotal.WithLabelValues("created").Inc()
	s.logger.Info("admin created",
		zap.String("admin_id", row.ID),
		zap.String("email", row.Email),
		zap.Bool("super_admin", row.IsSuperAdmin),
		zap.String("actor", actor.Email),
	)

	return &admin, nil
}

// UpdateAdmin replaces an admin's details. An empty password keeps the
// current one. The last super admin cannot be demoted.
func (s *Storage) UpdateAdmin(ctx context.Context, p auth.Principal, id string, in AdminInput) (*Admin, error) {
	if err := requireSuperAdmin(p); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ErrNotFound
	}

	in.normalize()
	if err := in.validate(false); err != nil {
		return nil, err
	}

	var hash string
	if in.Password != "" {
		var err error
		if hash, err = auth.HashPassword(in.Password, auth.AdminPasswordCost); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	var row *repository.Admin
	err := s.withTx(ctx, func(tx db.Tx) error {
		superIDs, err := s.adminRepo.SuperAdminIDsForUpdateTx(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to lock super admins: %w", err)
		}
		if err := requireLockedSuperAdmin(p, superIDs); err != nil {
			return err
		}

		row, err = s.lockAdmin(ctx, tx, id)
		if err != nil {
			return err
		}
		if row.IsSuperAdmin && !in.IsSuperAdmin && len(superIDs) <= 1 {
			return fmt.Errorf("%w: cannot demote the last super admin", ErrInvalidInput)
		}

		row.Name = in.Name
		row.Email = in.Email
		row.IsSuperAdmin = in.IsSuperAdmin
		if hash != "" {
			row.Password = hash
		}
		row.UpdatedAt = s.timeNow()

		if err := s.adminRepo.UpdateTx(ctx, tx, row); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: admin %s already exists", ErrConflict, in.Email)
			}
			return fmt.Errorf("failed to update admin: %w", err)
		}
		return s.enqueueEvent(ctx, tx, p, event{
			Type:       eventAdminUpdated,
			EntityType: "admin",
			EntityID:   id,
			Data:       toAdmin(row),
		}, row.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}

	metrics.AdminAccountsTotal.WithLabelValues("updated").Inc()
	s.logger.Info("admin updated", zap.String("admin_id", id), zap.String("actor", p.Email))

	admin := toAdmin(row)
	return &admin, nil
}

// DeleteAdmin removes an admin account. Admins cannot delete themselves and
// the last super admin cannot be deleted.
func (s *Storage) DeleteAdmin(ctx context.Context, p auth.Principal, id string) error {
	if err := requireSuperAdmin(p); err != nil {
		return err
	}
	if !validID(id) {
		return ErrNotFound
	}
	if id == p.ID {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidInput)
	}

	err := s.withTx(ctx, func(tx db.Tx) error {
		superIDs, err := s.adminRepo.SuperAdminIDsForUpdateTx(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to lock super admins: %w", err)
		}
		if err := requireLockedSuperAdmin(p, superIDs); err != nil {
			return err
		}

		row, err := s.lockAdmin(ctx, tx, id)
		if err != nil {
			return err
		}
		if row.IsSuperAdmin && len(superIDs) <= 1 {
			return fmt.Errorf("%w: cannot delete the last super admin", ErrInvalidInput)
		}

		if _, err := s.adminRepo.DeleteTx(ctx, tx, id); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to delete admin: %w", err)
		}
		return s.enqueueEvent(ctx, tx, p, event{
			Type:       eventAdminDeleted,
			EntityType: "admin",
			EntityID:   id,
			Data:       toAdmin(row),
		}, s.timeNow())
	})
	if err != nil {
		return err
	}

	metrics.AdminAccountsTotal.WithLabelValues("deleted").Inc()
	s.logger.Info("admin deleted", zap.String("admin_id", id), zap.String("actor", p.Email))
	return nil
}

// EnsureSuperAdmin makes sure a super admin with the given email exists,
// creating it or promoting an existing admin. It reports whether an account
// was created.
func (s *Storage) EnsureSuperAdmin(ctx context.Context, name, email, password string) (*Admin, bool, error) {
	in := AdminInput{Name: name, Email: email, Password: password, IsSuperAdmin: true}
	in.normalize()
	if err := in.validate(true); err != nil {
		return nil, false, err
	}

	existing, err := s.adminRepo.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
		return nil, false, fmt.Errorf("failed to get admin: %w", err)
	}
	if err != nil {
		admin, err := s.createAdmin(ctx, systemPrincipal, in)
		if err != nil {
			return nil, false, err
		}
		return admin, true, nil
	}

	if existing.IsSuperAdmin {
		admin := toAdmin(existing)
		return &admin, false, nil
	}

	existing.IsSuperAdmin = true
	existing.UpdatedAt = s.timeNow()
	err = s.withTx(ctx, func(tx db.Tx) error {
		if err := s.adminRepo.UpdateTx(ctx, tx, existing); err != nil {
			return fmt.Errorf("failed to promote admin: %w", err)
		}
		return s.enqueueEvent(ctx, tx, systemPrincipal, event{
			Type:       eventAdminUpdated,
			EntityType: "admin",
			EntityID:   existing.ID,
			Data:       toAdmin(existing),
		}, existing.UpdatedAt)
	})
	if err != nil {
		return nil, false, err
	}

	s.logger.Info("admin promoted to super admin", zap.String("admin_id", existing.ID))
	admin := toAdmin(existing)
	return &admin, false, nil
}

// RecentAdmins returns the newest admin accounts for the activity feed.
func (s *Storage) RecentAdmins(ctx context.Context, limit int) ([]Admin, error) {
	rows, err := s.adminRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent admins: %w", err)
	}
	return toAdmins(rows), nil
}

func (s *Storage) lockAdmin(ctx context.Context, tx db.Tx, id string) (*repository.Admin, error) {
	row, err := s.adminRepo.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return row, nil
}

func toAdmins(rows []*repository.Admin) []Admin {
	admins := make([]Admin, 0, len(rows))
	for _, r := range rows {
		admins = append(admins, toAdmin(r))
	}
	return admins
}
