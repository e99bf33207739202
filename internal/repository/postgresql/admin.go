package postgresql

import (
	"context"

	"github.com/transcontinental/portal/internal/db"
	"github.com/transcontinental/portal/internal/repository"
	"github.com/transcontinental/portal/internal/storage"
)

const adminColumns = "id, email, name, password, is_super_admin, created_at, updated_at"

type AdminRepo struct {
	db db.DB
}

func NewAdminRepo(db db.DB) storage.AdminRepository {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) CreateTx(ctx context.Context, tx db.Tx, a *repository.Admin) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO admins (`+adminColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, a.ID, a.Email, a.Name, a.Password, a.IsSuperAdmin, a.CreatedAt, a.UpdatedAt)
	return translateError(err)
}

func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*repository.Admin, error) {
	var a repository.Admin
	if err := r.db.Get(ctx, &a, "SELECT "+adminColumns+" FROM admins WHERE email = $1", email); err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

func (r *AdminRepo) GetByID(ctx context.Context, id string) (*repository.Admin, error) {
	var a repository.Admin
	if err := r.db.Get(ctx, &a, "SELECT "+adminColumns+" FROM admins WHERE id = $1", id); err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

func (r *AdminRepo) GetByIDForUpdateTx(ctx context.Context, tx db.Tx, id string) (*repository.Admin, error) {
	var a repository.Admin
	if err := tx.Get(ctx, &a, "SELECT "+adminColumns+" FROM admins WHERE id = $1 FOR UPDATE", id); err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

func (r *AdminRepo) UpdateTx(ctx context.Context, tx db.Tx, a *repository.Admin) error {
	tag, err := tx.Exec(ctx, `
        UPDATE admins
        SET
            email = $2,
            name = $3,
            password = $4,
            is_super_admin = $5,
            updated_at = $6
        WHERE id = $1
    `, a.ID, a.Email, a.Name, a.Password, a.IsSuperAdmin, a.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *AdminRepo) DeleteTx(ctx context.Context, tx db.Tx, id string) (*repository.Admin, error) {
	var a repository.Admin
	if err := tx.Get(ctx, &a, "DELETE FROM admins WHERE id = $1 RETURNING "+adminColumns, id); err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

// SuperAdminIDsForUpdateTx locks every super admin row in id order, so that
// concurrent demotions and deletions see a stable count.
func (r *AdminRepo) SuperAdminIDsForUpdateTx(ctx context.Context, tx db.Tx) ([]string, error) {
	var ids []string
	err := tx.Select(ctx, &ids, "SELECT id FROM admins WHERE is_super_admin ORDER BY id FOR UPDATE")
	if err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}

func (r *AdminRepo) List(ctx context.Context) ([]*repository.Admin, error) {
	var admins []*repository.Admin
	if err := r.db.Select(ctx, &admins, "SELECT "+adminColumns+" FROM admins ORDER BY created_at DESC"); err != nil {
		return nil, translateError(err)
	}
	return admins, nil
}

func (r *AdminRepo) Recent(ctx context.Context, limit int) ([]*repository.Admin, error) {
	var admins []*repository.Admin
	err := r.db.Select(ctx, &admins,
		"SELECT "+adminColumns+" FROM admins ORDER BY created_at DESC, id DESC LIMIT $1", limit)
	if err != nil {
		return nil, translateError(err)
	}
	return admins, nil
}
