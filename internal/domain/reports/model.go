// Package reports generates AI-written sales reports from invoice data.
package reports

import (
	"strings"
	"time"
	"unicode/utf8"

	"negocio/internal/core/id"
	"negocio/internal/core/types"
)

// Type selects the prompt template.
type Type string

const (
	SalesAnalysis          Type = "sales_analysis"
	PurchaseRecommendation Type = "purchase_recommendation"
	InventoryForecast      Type = "inventory_forecast"
)

var typeAliases = map[string]Type{
	"sales_analysis":          SalesAnalysis,
	"analisis_ventas":         SalesAnalysis,
	"purchase_recommendation": PurchaseRecommendation,
	"recomendacion_compras":   PurchaseRecommendation,
	"inventory_forecast":      InventoryForecast,
	"prediccion_inventario":   InventoryForecast,
}

// ParseType accepts the English and Spanish names, case-insensitively.
func ParseType(s string) (Type, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// Params are the generation parameters stored with every report.
type Params struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

// Period is the inclusive date range a snapshot covers.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ProductSales is the quantity sold of one product within the period.
type ProductSales struct {
	Name     string `db:"name" json:"name"`
	Quantity int64  `db:"quantity" json:"quantity"`
}

// SalesSnapshot is the input the prompt is rendered from.
type SalesSnapshot struct {
	Period       Period         `json:"period"`
	InvoiceCount int64          `json:"invoiceCount"`
	Revenue      types.Money    `json:"revenue"`
	TopProducts  []ProductSales `json:"topProducts"`
}

// Report is a stored generation result. Reports are never updated.
type Report struct {
	ID        id.ID     `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Type      Type      `json:"reportType"`
	CreatedAt time.Time `json:"createdAt"`

	Input  SalesSnapshot `json:"inputData"`
	Prompt string        `json:"prompt"`
	Text   string        `json:"generatedText"`
	Params Params        `json:"params"`

	Metadata map[string]any `json:"metadata,omitempty"`
}

const summaryLen = 100

// Summary is the first line of the text, cut to 100 characters, followed by "...".
func (r *Report) Summary() string {
	line, _, _ := strings.Cut(r.Text, "\n")
	if utf8.RuneCountInString(line) > summaryLen {
		line = string([]rune(line)[:summaryLen])
	}
	return line + "..."
}

// ListFilter for stored reports. Reports are always scoped to their owner.
type ListFilter struct {
	UserID string
	Type   *Type

	// Search matches the generated text and the prompt
	Search string

	Limit  int
	Offset int
}
