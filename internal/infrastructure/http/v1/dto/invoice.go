package dto

import (
	"time"

	"negocio/internal/core/types"
	"negocio/internal/domain/documents/invoice"
)

// CreateInvoiceRequest accepts the English keys and their Spanish equivalents.
type CreateInvoiceRequest struct {
	Client  string `json:"client"`
	Cliente string `json:"cliente"`

	PaymentMethod string `json:"payment_method"`
	MetodoPago    string `json:"metodo_pago"`

	Products  []InvoiceProductRequest `json:"products"`
	Productos []InvoiceProductRequest `json:"productos"`
}

type InvoiceProductRequest struct {
	Name   string `json:"name"`
	Nombre string `json:"nombre"`

	Serials  []string `json:"serials"`
	Seriales []string `json:"seriales"`
}

func (r *CreateInvoiceRequest) ToDomain() invoice.CreateRequest {
	products := r.Products
	if len(products) == 0 {
		products = r.Productos
	}

	req := invoice.CreateRequest{
		ClientName:    firstNonEmpty(r.Client, r.Cliente),
		PaymentMethod: firstNonEmpty(r.PaymentMethod, r.MetodoPago),
		Lines:         make([]invoice.LineRequest, len(products)),
	}
	for i, p := range products {
		serials := p.Serials
		if len(serials) == 0 {
			serials = p.Seriales
		}
		req.Lines[i] = invoice.LineRequest{
			ProductName: firstNonEmpty(p.Name, p.Nombre),
			Serials:     append([]string(nil), serials...),
		}
	}
	return req
}

// InvoiceListRequest binds the list query string.
type InvoiceListRequest struct {
	ClientID      string     `form:"client_id"`
	PaymentMethod string     `form:"payment_method"`
	DateFrom      *time.Time `form:"date_from" time_format:"2006-01-02" time_utc:"1"`
	DateTo        *time.Time `form:"date_to" time_format:"2006-01-02" time_utc:"1"`
	Search        string     `form:"search"`
	OrderBy       string     `form:"orderBy"`
	Limit         int        `form:"limit"`
	Offset        int        `form:"offset"`
}

type InvoiceResponse struct {
	ID            string      `json:"id"`
	Number        string      `json:"number"`
	CreatedAt     time.Time   `json:"createdAt"`
	ClientID      string      `json:"clientId"`
	ClientName    string      `json:"clientName"`
	PaymentMethod string      `json:"paymentMethod"`
	Subtotal      types.Money `json:"subtotal"`
	Tax           types.Money `json:"tax"`
	Total         types.Money `json:"total"`
	Quantity      int         `json:"quantity,omitempty"`
}

type InvoiceLineResponse struct {
	LineNo      int         `json:"lineNo"`
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	UnitPrice   types.Money `json:"unitPrice"`
	LineTotal   types.Money `json:"lineTotal"`
	Serials     []string    `json:"serials"`
}

// InvoiceDetailResponse is returned by create and get.
type InvoiceDetailResponse struct {
	Invoice InvoiceResponse       `json:"invoice"`
	Lines   []InvoiceLineResponse `json:"lines"`
}

func FromInvoice(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID.String(),
		Number:        inv.Number,
		CreatedAt:     inv.CreatedAt,
		ClientID:      inv.ClientID.String(),
		ClientName:    inv.ClientName,
		PaymentMethod: string(inv.PaymentMethod),
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Quantity:      inv.Quantity(),
	}
}

func FromInvoiceDetail(inv *invoice.Invoice) InvoiceDetailResponse {
	resp := InvoiceDetailResponse{
		Invoice: FromInvoice(inv),
		Lines:   make([]InvoiceLineResponse, len(inv.Lines)),
	}
	for i, l := range inv.Lines {
		resp.Lines[i] = InvoiceLineResponse{
			LineNo:      l.LineNo,
			ProductID:   l.ProductID.String(),
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
			Serials:     l.Serials,
		}
	}
	return resp
}
