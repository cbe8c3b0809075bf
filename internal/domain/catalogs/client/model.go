// Package client provides the Client catalog: buyers invoices are issued to.
package client

import (
	"context"
	"regexp"
	"strings"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
)

var (
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRE = regexp.MustCompile(`^\+?[0-9 ()\-]{6,20}$`)
	taxIDRE = regexp.MustCompile(`^[A-Za-z]?-?[0-9.\-]{5,15}$`)
)

// Client is a buyer. Invoices resolve clients by first and last name.
type Client struct {
	entity.BaseEntity

	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`

	Email *string `db:"email" json:"email,omitempty"`

	// TaxID is the national identity or tax number, unique when present
	TaxID *string `db:"tax_id" json:"taxId,omitempty"`

	Address *string `db:"address" json:"address,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
}

func NewClient(firstName, lastName string) *Client {
	return &Client{
		BaseEntity: entity.NewBaseEntity(),
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
	}
}

// FullName is the display name used on invoices.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate implements entity.Validatable interface.
func (c *Client) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return apperror.NewValidation("first name is required").
			WithDetail("field", "firstName")
	}
	if len(c.FirstName) > 100 || len(c.LastName) > 100 {
		return apperror.NewValidation("name is too long").
			WithDetail("max", 100)
	}
	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}
	if c.Phone != nil && *c.Phone != "" && !phoneRE.MatchString(*c.Phone) {
		return apperror.NewValidation("invalid phone format").
			WithDetail("field", "phone")
	}
	if c.TaxID != nil && *c.TaxID != "" && !taxIDRE.MatchString(*c.TaxID) {
		return apperror.NewValidation("invalid tax id format").
			WithDetail("field", "taxId")
	}
	return nil
}

// SplitFullName splits a display name for lookup.
// One token is a first name with an empty last name; with two or more
// tokens the first is the first name and the rest, space-joined, the last name.
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
