// Package item provides serialized stock units. An Item exists while its unit is unsold.
package item

import (
	"context"
	"regexp"
	"strings"

	"negocio/internal/core/apperror"
	"negocio/internal/core/entity"
	"negocio/internal/core/id"
)

var serialRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-/]{0,99}$`)

// Item is one physical unit of a product, identified by a globally unique serial.
type Item struct {
	entity.BaseEntity

	Serial    string `db:"serial" json:"serial"`
	ProductID id.ID  `db:"product_id" json:"productId"`
}

func NewItem(productID id.ID, serial string) *Item {
	return &Item{
		BaseEntity: entity.NewBaseEntity(),
		Serial:     strings.TrimSpace(serial),
		ProductID:  productID,
	}
}

// Validate implements entity.Validatable interface.
func (i *Item) Validate(ctx context.Context) error {
	if err := ValidateSerial(i.Serial); err != nil {
		return err
	}
	if id.IsNil(i.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	return nil
}

// ValidateSerial checks the serial format shared by item creation and invoicing.
func ValidateSerial(serial string) error {
	if strings.TrimSpace(serial) == "" {
		return apperror.NewValidation("serial is required").
			WithDetail("field", "serial")
	}
	if !serialRE.MatchString(serial) {
		return apperror.NewValidation("invalid serial format").
			WithDetail("field", "serial").
			WithDetail("value", serial)
	}
	return nil
}
