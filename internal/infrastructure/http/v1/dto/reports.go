package dto

import (
	"time"

	"negocio/internal/core/apperror"
	"negocio/internal/domain/reports"
)

const dateLayout = "2006-01-02"

// GenerateReportRequest accepts dates as YYYY-MM-DD. Spanish keys are accepted too.
type GenerateReportRequest struct {
	ReportType string `json:"report_type"`
	Tipo       string `json:"tipo"`

	StartDate   string `json:"start_date"`
	FechaInicio string `json:"fecha_inicio"`
	EndDate     string `json:"end_date"`
	FechaFin    string `json:"fecha_fin"`

	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"max_tokens"`
}

func (r *GenerateReportRequest) ToDomain() (reports.GenerateRequest, error) {
	req := reports.GenerateRequest{
		Type:        firstNonEmpty(r.ReportType, r.Tipo),
		Model:       r.Model,
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
	}

	var err error
	if req.StartDate, err = parseDate(firstNonEmpty(r.StartDate, r.FechaInicio), "start_date"); err != nil {
		return req, err
	}
	if req.EndDate, err = parseDate(firstNonEmpty(r.EndDate, r.FechaFin), "end_date"); err != nil {
		return req, err
	}
	return req, nil
}

func parseDate(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, apperror.NewValidation("invalid date, expected YYYY-MM-DD").
			WithDetail("field", field).
			WithDetail("value", s)
	}
	return &t, nil
}

// ReportListRequest binds the list query string.
type ReportListRequest struct {
	Type   string `form:"tipo"`
	Query  string `form:"q"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

type ReportResponse struct {
	ID            string                `json:"id"`
	ReportType    reports.Type          `json:"reportType"`
	CreatedAt     time.Time             `json:"createdAt"`
	Summary       string                `json:"summary"`
	GeneratedText string                `json:"generatedText"`
	Prompt        string                `json:"prompt,omitempty"`
	InputData     reports.SalesSnapshot `json:"inputData"`
	Params        reports.Params        `json:"params"`
	Metadata      map[string]any        `json:"metadata,omitempty"`
}

// ReportSummaryResponse is the list form of a report.
type ReportSummaryResponse struct {
	ID         string         `json:"id"`
	ReportType reports.Type   `json:"reportType"`
	CreatedAt  time.Time      `json:"createdAt"`
	Summary    string         `json:"summary"`
	Period     reports.Period `json:"period"`
}

func FromReport(r *reports.Report) ReportResponse {
	return ReportResponse{
		ID:            r.ID.String(),
		ReportType:    r.Type,
		CreatedAt:     r.CreatedAt,
		Summary:       r.Summary(),
		GeneratedText: r.Text,
		Prompt:        r.Prompt,
		InputData:     r.Input,
		Params:        r.Params,
		Metadata:      r.Metadata,
	}
}

func FromReportSummaries(list []*reports.Report) []ReportSummaryResponse {
	out := make([]ReportSummaryResponse, len(list))
	for i, r := range list {
		out[i] = ReportSummaryResponse{
			ID:         r.ID.String(),
			ReportType: r.Type,
			CreatedAt:  r.CreatedAt,
			Summary:    r.Summary(),
			Period:     r.Input.Period,
		}
	}
	return out
}
