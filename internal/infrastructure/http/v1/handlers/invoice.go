package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/domain"
	"negocio/internal/domain/documents/invoice"
	"negocio/internal/infrastructure/http/v1/dto"
)

// InvoiceService is the invoice workflow as seen by HTTP.
type InvoiceService interface {
	Create(ctx context.Context, req invoice.CreateRequest) (*invoice.Invoice, error)
	GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error)
	List(ctx context.Context, filter invoice.ListFilter) (domain.ListResult[*invoice.Invoice], error)
}

type InvoiceHandler struct {
	*BaseHandler
	service InvoiceService
}

func NewInvoiceHandler(base *BaseHandler, service InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, service: service}
}

// Create handles POST /invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromInvoiceDetail(inv))
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := h.ParamID(c)
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoiceDetail(inv))
}

// List handles GET /invoices. date_to is inclusive; the repository bound is exclusive.
func (h *InvoiceHandler) List(c *gin.Context) {
	var req dto.InvoiceListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := invoice.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Search = req.Search
	filter.OrderBy = req.OrderBy
	filter.Offset = req.Offset
	if req.Limit > 0 {
		filter.Limit = req.Limit
	}

	if req.ClientID != "" {
		clientID, err := id.Parse(req.ClientID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid client_id").WithDetail("value", req.ClientID))
			return
		}
		filter.ClientID = &clientID
	}
	if req.PaymentMethod != "" {
		method, ok := invoice.ParsePaymentMethod(req.PaymentMethod)
		if !ok {
			h.Error(c, apperror.NewValidation("invalid payment method").WithDetail("value", req.PaymentMethod))
			return
		}
		filter.PaymentMethod = &method
	}
	filter.DateFrom = req.DateFrom
	if req.DateTo != nil {
		to := req.DateTo.AddDate(0, 0, 1)
		filter.DateTo = &to
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.InvoiceResponse, len(result.Items))
	for i, inv := range result.Items {
		items[i] = dto.FromInvoice(inv)
	}
	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
