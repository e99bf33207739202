package storage

import (
	"fmt"
	"net/mail"
	"strings"
)

const (
	maxBillOfLadingFiles = 20
	minPasswordLength    = 6
	maxContainers        = 10000
)

type CreateShipmentInput struct {
	OwnerEmail     string   `json:"clientEmail"`
	Containers20ft int      `json:"containers20ft"`
	Containers40ft int      `json:"containers40ft"`
	Files          FileRefs `json:"-"`
}

func (in *CreateShipmentInput) normalize() {
	in.OwnerEmail = normalizeEmail(in.OwnerEmail)
	in.Files.PackingListFile = trimOptional(in.Files.PackingListFile)
	in.Files.CommercialInvoiceFile = trimOptional(in.Files.CommercialInvoiceFile)
	refs := make([]string, 0, len(in.Files.BillOfLadingFiles))
	for _, ref := range in.Files.BillOfLadingFiles {
		refs = append(refs, strings.TrimSpace(ref))
	}
	in.Files.BillOfLadingFiles = refs
}

func (in CreateShipmentInput) validate() error {
	if in.Containers20ft < 0 || in.Containers40ft < 0 {
		return fmt.Errorf("%w: container counts must be non-negative", ErrInvalidInput)
	}
	if in.Containers20ft > maxContainers || in.Containers40ft > maxContainers {
		return fmt.Errorf("%w: container counts must not exceed %d", ErrInvalidInput, maxContainers)
	}
	if len(in.Files.BillOfLadingFiles) > maxBillOfLadingFiles {
		return fmt.Errorf("%w: at most %d bill of lading files", ErrInvalidInput, maxBillOfLadingFiles)
	}
	for _, ref := range in.Files.all() {
		if ref == "" {
			return fmt.Errorf("%w: empty file reference", ErrInvalidInput)
		}
	}
	return nil
}

func (f FileRefs) all() []string {
	refs := append([]string(nil), f.BillOfLadingFiles...)
	if f.PackingListFile != nil {
		refs = append(refs, *f.PackingListFile)
	}
	if f.CommercialInvoiceFile != nil {
		refs = append(refs, *f.CommercialInvoiceFile)
	}
	return refs
}

type SignUpInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	Phone       string `json:"phoneNumber"`
	Address     string `json:"companyAddress"`
	City        string `json:"city"`
	Country     string `json:"country"`
	PostalCode  string `json:"postalCode"`
}

func (in *SignUpInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.Country = strings.TrimSpace(in.Country)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
}

func (in SignUpInput) validate() error {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if in.CompanyName == "" {
		missing = append(missing, "companyName")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return validatePassword(in.Password)
}

type ProfileInput struct {
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
	Phone       string `json:"phoneNumber"`
	Address     string `json:"companyAddress"`
	City        string `json:"city"`
	Country     string `json:"country"`
	PostalCode  string `json:"postalCode"`
}

func (in *ProfileInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.Country = strings.TrimSpace(in.Country)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
}

func (in ProfileInput) validate() error {
	if in.Name == "" || in.CompanyName == "" {
		return fmt.Errorf("%w: name and companyName are required", ErrInvalidInput)
	}
	return nil
}

type ClientUpdateInput struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
}

func (in *ClientUpdateInput) normalize() {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
}

func (in ClientUpdateInput) validate() error {
	if in.Email == "" || in.Name == "" || in.CompanyName == "" {
		return fmt.Errorf("%w: email, name and companyName are required", ErrInvalidInput)
	}
	return validateEmail(in.Email)
}

type AdminInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
}

func (in *AdminInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
}

// validate checks the input. An empty password is accepted only on update,
// where it keeps the current one.
func (in AdminInput) validate(requirePassword bool) error {
	if in.Name == "" || in.Email == "" {
		return fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if in.Password == "" {
		if requirePassword {
			return fmt.Errorf("%w: missing required fields", ErrInvalidInput)
		}
		return nil
	}
	return validatePassword(in.Password)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return nil
}

func validatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
