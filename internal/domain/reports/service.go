package reports

import (
	"context"
	"fmt"
	"time"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/pkg/logger"
)

// DefaultTopProducts bounds the product list sent to the generator.
const DefaultTopProducts = 20

// Service provides report generation operations.
type Service struct {
	repo  Repository
	sales SalesSource
	gen   TextGenerator
	now   func() time.Time

	defaultModel string
}

func NewService(repo Repository, sales SalesSource, gen TextGenerator) *Service {
	return &Service{repo: repo, sales: sales, gen: gen, now: time.Now}
}

// WithDefaultModel sets the model used when a request names none.
func (s *Service) WithDefaultModel(model string) *Service {
	s.defaultModel = model
	return s
}

// Generate builds the sales snapshot, asks the generator for text and stores the report.
// A generator failure is stored as the report text and flagged in the metadata.
func (s *Service) Generate(ctx context.Context, userID string, req GenerateRequest) (*Report, error) {
	if req.Model == "" {
		req.Model = s.defaultModel
	}
	v, err := req.validate(s.now())
	if err != nil {
		return nil, err
	}

	snap, err := s.sales.SalesSnapshot(ctx, v.Period.Start, v.Period.End.AddDate(0, 0, 1), DefaultTopProducts)
	if err != nil {
		return nil, fmt.Errorf("sales snapshot: %w", err)
	}
	snap.Period = v.Period

	prompt, err := BuildPrompt(v.Type, snap)
	if err != nil {
		return nil, err
	}

	started := s.now()
	text, genErr := s.gen.Generate(ctx, prompt, v.Params)
	metadata := map[string]any{
		"durationMs": s.now().Sub(started).Milliseconds(),
	}
	if genErr != nil {
		logger.Warn(ctx, "report generation failed", "type", v.Type, "error", genErr)
		text = "error generating report: " + genErr.Error()
		metadata["generationFailed"] = true
	}

	r := &Report{
		ID:        id.New(),
		UserID:    userID,
		Type:      v.Type,
		CreatedAt: s.now().UTC(),
		Input:     *snap,
		Prompt:    prompt,
		Text:      text,
		Params:    v.Params,
		Metadata:  metadata,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	logger.Info(ctx, "report generated",
		"id", r.ID,
		"type", r.Type,
		"invoices", snap.InvoiceCount,
		"failed", genErr != nil,
	)
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, reportID id.ID, userID string) (*Report, error) {
	r, err := s.repo.GetByID(ctx, reportID, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("report", reportID.String())
		}
		return nil, err
	}
	return r, nil
}

// List defaults to 50 reports and never returns more than 200.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Report, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, reportID id.ID, userID string) error {
	return s.repo.Delete(ctx, reportID, userID)
}
