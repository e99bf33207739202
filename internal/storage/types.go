package storage

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusAccepted    Status = "ACCEPTED"
	StatusDeclined    Status = "DECLINED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusUnderReview, StatusAccepted, StatusDeclined:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// CanTransitionTo reports whether a shipment in status s may move to next.
// Only UNDER_REVIEW has outgoing edges.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusUnderReview && next.IsTerminal()
}

type FileRefs struct {
	BillOfLadingFiles     []string `json:"billOfLadingFiles"`
	PackingListFile       *string  `json:"packingListFile"`
	CommercialInvoiceFile *string  `json:"commercialInvoiceFile"`
}

type Shipment struct {
	ID             string  `json:"id"`
	ClientEmail    *string `json:"clientEmail"`
	ClientName     string  `json:"clientName"`
	Containers20ft int     `json:"containers20ft"`
	Containers40ft int     `json:"containers40ft"`
	FileRefs
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s Shipment) TotalContainers() int {
	return s.Containers20ft + s.Containers40ft
}

type ShipmentFilter struct {
	OwnerEmail string
}

type ShipmentSummary struct {
	Total           int `json:"total"`
	UnderReview     int `json:"underReview"`
	Accepted        int `json:"accepted"`
	Declined        int `json:"declined"`
	Containers20ft  int `json:"containers20ft"`
	Containers40ft  int `json:"containers40ft"`
	TotalContainers int `json:"totalContainers"`
}

type Client struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	CompanyName string    `json:"companyName"`
	Phone       string    `json:"phoneNumber"`
	Address     string    `json:"companyAddress"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	PostalCode  string    `json:"postalCode"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"isAdmin"`
	IsSuperAdmin bool      `json:"isSuperAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
