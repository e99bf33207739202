package repository

import (
	"errors"
	"time"
)

var (
	ErrObjectNotFound = errors.New("not found")
	ErrDuplicate      = errors.New("already exists")
	ErrForeignKey     = errors.New("referenced object does not exist")
)

type Client struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	Name        string    `db:"name"`
	CompanyName string    `db:"company_name"`
	Password    string    `db:"password"`
	Phone       string    `db:"phone"`
	Address     string    `db:"address"`
	City        string    `db:"city"`
	Country     string    `db:"country"`
	PostalCode  string    `db:"postal_code"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Admin struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	Password     string    `db:"password"`
	IsSuperAdmin bool      `db:"is_super_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Shipment struct {
	ID                    string    `db:"id"`
	ClientEmail           *string   `db:"client_email"`
	ClientName            string    `db:"client_name"`
	Containers20ft        int       `db:"containers_20ft"`
	Containers40ft        int       `db:"containers_40ft"`
	BillOfLadingFiles     []string  `db:"bill_of_lading_files"`
	PackingListFile       *string   `db:"packing_list_file"`
	CommercialInvoiceFile *string   `db:"commercial_invoice_file"`
	Status                string    `db:"status"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}

type ShipmentSummary struct {
	Total          int `db:"total"`
	UnderReview    int `db:"under_review"`
	Accepted       int `db:"accepted"`
	Declined       int `db:"declined"`
	Containers20ft int `db:"containers_20ft"`
	Containers40ft int `db:"containers_40ft"`
}
