package reports

import (
	"context"
	"time"

	"negocio/internal/core/id"
)

// Repository stores generated reports.
type Repository interface {
	Create(ctx context.Context, r *Report) error

	// GetByID returns the report only when it belongs to userID.
	GetByID(ctx context.Context, reportID id.ID, userID string) (*Report, error)

	// List returns the owner's reports, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Report, error)

	Delete(ctx context.Context, reportID id.ID, userID string) error
}

// SalesSource aggregates invoices for a half-open time range [from, to).
type SalesSource interface {
	SalesSnapshot(ctx context.Context, from, to time.Time, topN int) (*SalesSnapshot, error)
}

// TextGenerator turns a prompt into report text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}
