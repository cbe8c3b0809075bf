// Package apperror provides the tagged error type returned by every service.
// Handlers render it as {code, message, details}; anything else is INTERNAL.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the coarse error category the caller can act on.
type Kind string

const (
	KindValidation  Kind = "VALIDATION"
	KindNotFound    Kind = "NOT_FOUND"
	KindConflict    Kind = "CONFLICT"
	KindInternal    Kind = "INTERNAL"
	KindAuth        Kind = "UNAUTHORIZED"
	KindUnavailable Kind = "UNAVAILABLE"
)

// Machine-readable codes. Several codes share a Kind.
const (
	CodeInternal = "INTERNAL_ERROR"

	CodeValidation = "VALIDATION_ERROR"

	CodeNotFound       = "NOT_FOUND"
	CodeInvalidSerials = "INVALID_SERIALS"

	CodeConflict               = "CONFLICT"
	CodeDuplicate              = "DUPLICATE_ENTRY"
	CodeInsufficientStock      = "INSUFFICIENT_STOCK"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	CodeUnauthorized = "UNAUTHORIZED"

	CodeRateUnavailable = "RATE_UNAVAILABLE"
)

// AppError is the standard error type of the service layer.
type AppError struct {
	Kind Kind `json:"-"`

	// Code is a machine-readable error identifier
	Code string `json:"code"`

	Message string `json:"message"`

	// Details contains additional context (field errors, quantities, serials)
	Details map[string]any `json:"details,omitempty"`

	HTTPStatus int `json:"-"`

	// Err is the underlying error (never exposed in JSON)
	Err error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, key any) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "key": key},
	}
}

// NewInvalidSerials reports requested serials that are not available items of the product.
func NewInvalidSerials(product string, missing []string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Code:       CodeInvalidSerials,
		Message:    fmt.Sprintf("serials not available for product %s: %s", product, strings.Join(missing, ", ")),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"product": product, "serials": missing},
	}
}

// NewInsufficientStock is a business-rule violation, rendered as 400.
func NewInsufficientStock(product string, requested, available int) *AppError {
	return &AppError{
		Kind:       KindConflict,
		Code:       CodeInsufficientStock,
		Message:    fmt.Sprintf("insufficient stock for product %s", product),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{
			"product":   product,
			"requested": requested,
			"available": available,
		},
	}
}

// NewConcurrentModification creates an optimistic locking error
func NewConcurrentModification(entity string, key any) *AppError {
	return &AppError{
		Kind:       KindConflict,
		Code:       CodeConcurrentModification,
		Message:    "record was modified concurrently, retry the request",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "key": key},
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Kind:       KindConflict,
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewDuplicate creates a duplicate entry error (409)
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Kind:       KindConflict,
		Code:       CodeDuplicate,
		Message:    fmt.Sprintf("%s with this %s already exists", entity, field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "field": field, "value": value},
	}
}

// NewInternal hides the cause from the client; the cause is logged by the error middleware.
func NewInternal(err error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Kind:       KindAuth,
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewRateUnavailable is returned when the exchange-rate feed has no usable value.
func NewRateUnavailable(err error) *AppError {
	return &AppError{
		Kind:       KindUnavailable,
		Code:       CodeRateUnavailable,
		Message:    "no exchange rate available",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// From returns err as an AppError, wrapping unknown errors as INTERNAL.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return NewInternal(err)
}

// KindOf returns the Kind of any error. Unknown errors are INTERNAL.
func KindOf(err error) Kind {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsConcurrentModification(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeConcurrentModification
	}
	return false
}
