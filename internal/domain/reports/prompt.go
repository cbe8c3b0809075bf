package reports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
	"time"
)

var templates = map[Type]*template.Template{
	SalesAnalysis: template.Must(template.New("sales").Parse(`Analyze this sales data:
{{.Data}}

Provide:
1. Key trends
2. Standout products
3. Strategic recommendations
`)),
	PurchaseRecommendation: template.Must(template.New("purchase").Parse(`Using this data:
{{.Data}}

Produce purchase recommendations:
1. Products to restock
2. Suggested quantities
3. Priorities
`)),
	InventoryForecast: template.Must(template.New("forecast").Parse(`Based on these sales between {{.Start}} and {{.End}}:
{{.Data}}

Forecast inventory needs:
1. Expected demand per product for the next period
2. Products at risk of running out
3. Products with excess stock
`)),
}

// BuildPrompt renders the template of t with the snapshot as indented JSON.
func BuildPrompt(t Type, snap *SalesSnapshot) (string, error) {
	tmpl, ok := templates[t]
	if !ok {
		tmpl = templates[SalesAnalysis]
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]string{
		"Data":  string(data),
		"Start": snap.Period.Start.Format(time.DateOnly),
		"End":   snap.Period.End.Format(time.DateOnly),
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}
