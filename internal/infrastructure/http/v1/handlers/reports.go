package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/domain/reports"
	"negocio/internal/infrastructure/http/v1/dto"
)

// ReportService is the AI report service as seen by HTTP.
type ReportService interface {
	Generate(ctx context.Context, userID string, req reports.GenerateRequest) (*reports.Report, error)
	GetByID(ctx context.Context, reportID id.ID, userID string) (*reports.Report, error)
	List(ctx context.Context, filter reports.ListFilter) ([]*reports.Report, error)
	Delete(ctx context.Context, reportID id.ID, userID string) error
}

// ReportsHandler handles HTTP requests for reports. Every call is scoped to the caller.
type ReportsHandler struct {
	*BaseHandler
	service ReportService
}

func NewReportsHandler(base *BaseHandler, service ReportService) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Generate handles POST /reports
func (h *ReportsHandler) Generate(c *gin.Context) {
	var body dto.GenerateReportRequest
	if !h.BindJSON(c, &body) {
		return
	}

	req, err := body.ToDomain()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.Generate(c.Request.Context(), h.GetUserID(c), req)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromReport(report))
}

// List handles GET /reports?tipo=&q=
func (h *ReportsHandler) List(c *gin.Context) {
	var req dto.ReportListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := reports.ListFilter{
		UserID: h.GetUserID(c),
		Search: req.Query,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Type != "" {
		t, ok := reports.ParseType(req.Type)
		if !ok {
			h.Error(c, apperror.NewValidation("invalid report type").WithDetail("value", req.Type))
			return
		}
		filter.Type = &t
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": dto.FromReportSummaries(list)})
}

// Get handles GET /reports/:id
func (h *ReportsHandler) Get(c *gin.Context) {
	reportID, ok := h.ParamID(c)
	if !ok {
		return
	}

	report, err := h.service.GetByID(c.Request.Context(), reportID, h.GetUserID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromReport(report))
}

// Delete handles DELETE /reports/:id
func (h *ReportsHandler) Delete(c *gin.Context) {
	reportID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), reportID, h.GetUserID(c)); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
