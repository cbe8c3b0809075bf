package invoice

import (
	"strings"

	"negocio/internal/core/apperror"
)

// CreateRequest is a request to invoice serialized units to a client.
type CreateRequest struct {
	ClientName    string
	PaymentMethod string
	Lines         []LineRequest
}

// LineRequest names a product and the serials sold from it.
type LineRequest struct {
	ProductName string
	Serials     []string
}

// Validate checks the request shape before any lookup and returns the parsed payment method.
func (r *CreateRequest) Validate() (PaymentMethod, error) {
	if strings.TrimSpace(r.ClientName) == "" {
		return "", apperror.NewValidation("client name is required").
			WithDetail("field", "client")
	}
	if len(r.Lines) == 0 {
		return "", apperror.NewValidation("at least one product is required").
			WithDetail("field", "products")
	}
	method, ok := ParsePaymentMethod(r.PaymentMethod)
	if !ok {
		return "", apperror.NewValidation("invalid payment method").
			WithDetail("field", "payment_method").
			WithDetail("value", r.PaymentMethod)
	}

	seen := make(map[string]int)
	for i := range r.Lines {
		line := &r.Lines[i]
		line.ProductName = strings.TrimSpace(line.ProductName)
		if line.ProductName == "" {
			return "", apperror.NewValidation("product name is required").
				WithDetail("line", i+1)
		}
		if len(line.Serials) == 0 {
			return "", apperror.NewValidation("at least one serial is required per product").
				WithDetail("line", i+1).
				WithDetail("product", line.ProductName)
		}
		for j, serial := range line.Serials {
			serial = strings.TrimSpace(serial)
			if serial == "" {
				return "", apperror.NewValidation("serial is required").
					WithDetail("line", i+1).
					WithDetail("product", line.ProductName)
			}
			if prev, dup := seen[serial]; dup {
				return "", apperror.NewValidation("serial requested more than once").
					WithDetail("serial", serial).
					WithDetail("line", prev)
			}
			seen[serial] = i + 1
			line.Serials[j] = serial
		}
	}
	return method, nil
}
