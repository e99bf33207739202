package postgresql

import (
	"context"

	"github.com/transcontinental/portal/internal/db"
	"github.com/transcontinental/portal/internal/repository"
	"github.com/transcontinental/portal/internal/storage"
)

const clientColumns = `id, email, name, company_name, password, phone, address, city, country,
        postal_code, created_at, updated_at`

type ClientRepo struct {
	db db.DB
}

func NewClientRepo(db db.DB) storage.ClientRepository {
	return &ClientRepo{db: db}
}

func (r *ClientRepo) CreateTx(ctx context.Context, tx db.Tx, c *repository.Client) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO clients (`+clientColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, c.ID, c.Email, c.Name, c.CompanyName, c.Password, c.Phone, c.Address, c.City, c.Country,
		c.PostalCode, c.CreatedAt, c.UpdatedAt)
	return translateError(err)
}

func (r *ClientRepo) GetByEmail(ctx context.Context, email string) (*repository.Client, error) {
	var c repository.Client
	if err := r.db.Get(ctx, &c, "SELECT "+clientColumns+" FROM clients WHERE email = $1", email); err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*repository.Client, error) {
	var c repository.Client
	if err := r.db.Get(ctx, &c, "SELECT "+clientColumns+" FROM clients WHERE id = $1", id); err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *ClientRepo) GetByIDForUpdateTx(ctx context.Context, tx db.Tx, id string) (*repository.Client, error) {
	var c repository.Client
	if err := tx.Get(ctx, &c, "SELECT "+clientColumns+" FROM clients WHERE id = $1 FOR UPDATE", id); err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *ClientRepo) UpdateTx(ctx context.Context, tx db.Tx, c *repository.Client) error {
	tag, err := tx.Exec(ctx, `
        UPDATE clients
        SET
            email = $2,
            name = $3,
            company_name = $4,
            phone = $5,
            address = $6,
            city = $7,
            country = $8,
            postal_code = $9,
            updated_at = $10
        WHERE id = $1
    `, c.ID, c.Email, c.Name, c.CompanyName, c.Phone, c.Address, c.City, c.Country, c.PostalCode, c.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *ClientRepo) DeleteTx(ctx context.Context, tx db.Tx, id string) (*repository.Client, error) {
	var c repository.Client
	if err := tx.Get(ctx, &c, "DELETE FROM clients WHERE id = $1 RETURNING "+clientColumns, id); err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *ClientRepo) List(ctx context.Context) ([]*repository.Client, error) {
	var clients []*repository.Client
	if err := r.db.Select(ctx, &clients, "SELECT "+clientColumns+" FROM clients ORDER BY created_at DESC"); err != nil {
		return nil, translateError(err)
	}
	return clients, nil
}

func (r *ClientRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.ExecQueryRow(ctx, "SELECT COUNT(*) FROM clients").Scan(&n); err != nil {
		return 0, translateError(err)
	}
	return n, nil
}

func (r *ClientRepo) Recent(ctx context.Context, limit int) ([]*repository.Client, error) {
	var clients []*repository.Client
	err := r.db.Select(ctx, &clients,
		"SELECT "+clientColumns+" FROM clients ORDER BY created_at DESC, id DESC LIMIT $1", limit)
	if err != nil {
		return nil, translateError(err)
	}
	return clients, nil
}
