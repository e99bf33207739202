package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/transcontinental/portal/internal/db"
	"github.com/transcontinental/portal/internal/repository"
)

const otherAdminID = "0e8c1c2a-54f4-4e55-8b7d-8e2fd1f5a003"

func TestStorage_CreateAdmin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.admins.EXPECT().GetByEmail(f.ctx, "new@transcontinental.example").Return(nil, repository.ErrObjectNotFound)
		f.expectCommit(t, eventAdminCreated)
		f.admins.EXPECT().SuperAdminIDsForUpdateTx(f.ctx, f.tx).Return([]string{superPrincipal.ID}, nil)
		f.admins.EXPECT().CreateTx(f.ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, a *repository.Admin) error {
				assert.False(t, a.IsSuperAdmin)
				assert.NotEqual(t, "secret1", a.Password)
				return nil
			})

		admin, err := f.storage.CreateAdmin(f.ctx, superPrincipal, AdminInput{
			Name:     "New Admin",
			Email:    "New@Transcontinental.example",
			Password: "secret1",
		})

		require.NoError(t, err)
		assert.True(t, admin.IsAdmin)
		assert.Equal(t, "new@transcontinental.example", admin.Email)
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newFixture(t)
		f.admins.EXPECT().GetByEmail(f.ctx, "ops@transcontinental.example").Return(&repository.Admin{}, nil)

		_, err := f.storage.CreateAdmin(f.ctx, superPrincipal, AdminInput{
			Name:     "Ops",
			Email:    "ops@transcontinental.example",
			Password: "secret1",
		})

		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("caller demoted since login", func(t *testing.T) {
		f := newFixture(t)
		f.admins.EXPECT().GetByEmail(f.ctx, "new@transcontinental.example").Return(nil, repository.ErrObjectNotFound)
		f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
		f.admins.EXPECT().SuperAdminIDsForUpdateTx(f.ctx, f.tx).Return([]string{otherAdminID}, nil)
		f.tx.EXPECT().Rollback(f.ctx).Return(nil)

		_, err := f.storage.CreateAdmin(f.ctx, superPrincipal, AdminInput{
			Name:     "New Admin",
			Email:    "new@transcontinental.example",
			Password: "secret1",
		})

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing password", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.storage.CreateAdmin(f.ctx, superPrincipal, AdminInput{Name: "Ops", Email: "ops@transcontinental.example"})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestStorage_UpdateAdmin(t *testing.T) {
	t.Run("keeps password when empty", func(t *testing.T) {
		f := newFixture(t)
		f.expectCommit(t, eventAdminUpdated)
		f.admins.EXPECT().SuperAdminIDsForUpdateTx(f.ctx, f.tx).Return([]string{superPrincipal.ID}, nil)
		f.admins.EXPECT().GetByIDForUpdateTx(f.ctx, f.tx, otherAdminID).Return(&repository.Admin{
			ID:       otherAdminID,
			Email:    "old@transcontinental.example",
			Password: "existing-hash",
		}, nil)
		f.admins.EXPECT().UpdateTx(f.ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, a *repository.Admin) error {
				assert.Equal(t, "existing-hash", a.Password)
				assert.Equal(t, "renamed@transcontinental.example", a.Email)
				return nil
			})

		admin, err := f.storage.UpdateAdmin(f.ctx, superPrincipal, otherAdminID, AdminInput{
			Name:  "Renamed",
			Email: "renamed@transcontinental.example",
		})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", admin.Name)
	})

	t.Run("cannot demote last super admin", func(t *testing.T) {
		f := newFixture(t)
		f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
		f.admins.EXPECT().SuperAdminIDsForUpdateTx(f.ctx, f.tx).Return([]string{superPrincipal.ID}, nil)
		f.admins.EXPECT().GetByIDForUpdateTx(f.ctx, f.tx, superPrincipal.ID).Return(&repository.Admin{
			ID:           superPrincipal.ID,
			IsSuperAdmin: true,
		}, nil)
		f.tx.EXPECT().Rollback(f.ctx).Return(nil)

		_, err := f.storage.UpdateAdmin(f.ctx, superPrincipal, superPrincipal.ID, AdminInput{
			Name:  "Root",
			Email: "root@transcontinental.example",
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("caller demoted since login", func(t *testing.T) {
		f := newFixture(t)
		f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
		f.admins.EXPECT().SuperAdminIDsForUpdateTx(f.ctx, f.tx).Return([]string{otherAdminID}, nil)
		f.tx.EXPECT().Rollback(f.ctx).Return(nil)

		_, err := f.storage.UpdateAdmin(f.ctx, superPrincipal, otherAdminID, AdminInput{
			Name:         "Other",
			Email:        "other@transcontinental.example",
			IsSuperAdmin: true,
		})

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestStorage_DeleteAdmin(t *testing.T) {
	t.Run("cannot delete self", func(t *testing.T) {
		f := newFixture(t)

		err := f.storage.DeleteAdmin(f.ctx, superPrincipal, superPrincipal.ID)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("caller no longer super admin", func(t *testing.T) {
		f := newFixture(t)
		f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
		f.admins.EXPECT().SuperAdminIDsForUpdateTx(f.ctx, f.tx).Return([]string{otherAdminID, "0e8c1c2a-54f4-4e55-8b7d-8e2fd1f5a004"}, nil)
		f.tx.EXPECT().Rollback(f.ctx).Return(nil)

		err := f.storage.DeleteAdmin(f.ctx, superPrincipal, otherAdminID)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("deleted super admin", func(t *testing.T) {
		f := newFixture(t)
		f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
		f.admins.EXPECT().SuperAdminIDsForUpdateTx(f.ctx, f.tx).Return(nil, nil)
		f.tx.EXPECT().Rollback(f.ctx).Return(nil)

		err := f.storage.DeleteAdmin(f.ctx, superPrincipal, otherAdminID)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.expectCommit(t, eventAdminDeleted)
		f.admins.EXPECT().SuperAdminIDsForUpdateTx(f.ctx, f.tx).Return([]string{superPrincipal.ID}, nil)
		f.admins.EXPECT().GetByIDForUpdateTx(f.ctx, f.tx, otherAdminID).Return(&repository.Admin{ID: otherAdminID}, nil)
		f.admins.EXPECT().DeleteTx(f.ctx, f.tx, otherAdminID).Return(&repository.Admin{ID: otherAdminID}, nil)

		assert.NoError(t, f.storage.DeleteAdmin(f.ctx, superPrincipal, otherAdminID))
	})

	t.Run("unknown admin", func(t *testing.T) {
		f := newFixture(t)
		f.db.EXPECT().BeginTx(f.ctx).Return(f.tx, nil)
		f.admins.EXPECT().SuperAdminIDsForUpdateTx(f.ctx, f.tx).Return([]string{superPrincipal.ID}, nil)
		f.admins.EXPECT().GetByIDForUpdateTx(f.ctx, f.tx, otherAdminID).Return(nil, repository.ErrObjectNotFound)
		f.tx.EXPECT().Rollback(f.ctx).Return(nil)

		assert.ErrorIs(t, f.storage.DeleteAdmin(f.ctx, superPrincipal, otherAdminID), ErrNotFound)
	})
}

func TestStorage_EnsureSuperAdmin(t *testing.T) {
	t.Run("already present", func(t *testing.T) {
		f := newFixture(t)
		f.admins.EXPECT().GetByEmail(f.ctx, "root@transcontinental.example").Return(&repository.Admin{
			ID:           superPrincipal.ID,
			Email:        "root@transcontinental.example",
			IsSuperAdmin: true,
		}, nil)

		admin, created, err := f.storage.EnsureSuperAdmin(f.ctx, "Root", "root@transcontinental.example", "secret1")

		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, admin.IsSuperAdmin)
	})

	t.Run("promotes existing admin", func(t *testing.T) {
		f := newFixture(t)
		f.admins.EXPECT().GetByEmail(f.ctx, "ops@transcontinental.example").Return(&repository.Admin{
			ID:    adminPrincipal.ID,
			Email: "ops@transcontinental.example",
		}, nil)
		f.expectCommit(t, eventAdminUpdated)
		f.admins.EXPECT().UpdateTx(f.ctx, f.tx, gomock.Any()).Return(nil)

		admin, created, err := f.storage.EnsureSuperAdmin(f.ctx, "Ops", "ops@transcontinental.example", "secret1")

		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, admin.IsSuperAdmin)
	})

	t.Run("creates missing admin", func(t *testing.T) {
		f := newFixture(t)
		f.admins.EXPECT().GetByEmail(f.ctx, "root@transcontinental.example").Return(nil, repository.ErrObjectNotFound).Times(2)
		f.expectCommit(t, eventAdminCreated)
		f.admins.EXPECT().CreateTx(f.ctx, f.tx, gomock.Any()).Return(nil)

		admin, created, err := f.storage.EnsureSuperAdmin(f.ctx, "Root", "root@transcontinental.example", "secret1")

		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, admin.IsSuperAdmin)
	})
}
