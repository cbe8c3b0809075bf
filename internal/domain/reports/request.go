package reports

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"negocio/internal/core/apperror"
)

const (
	DefaultModel       = "deepseek-chat"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000

	// DefaultWindow is the period used when the request names no dates.
	DefaultWindow = 30 * 24 * time.Hour

	maxRangeDays = 730
)

var modelRE = regexp.MustCompile(`^[a-z0-9\-:]+$`)

// GenerateRequest asks for a new report. Dates are calendar days; both or neither must be set.
type GenerateRequest struct {
	Type        string
	StartDate   *time.Time
	EndDate     *time.Time
	Model       string
	Temperature *float64
	MaxTokens   *int
}

// validRequest is a GenerateRequest after defaults and checks.
type validRequest struct {
	Type   Type
	Period Period
	Params Params
}

func (r GenerateRequest) validate(now time.Time) (validRequest, error) {
	var v validRequest

	raw := r.Type
	if strings.TrimSpace(raw) == "" {
		raw = string(SalesAnalysis)
	}
	t, ok := ParseType(raw)
	if !ok {
		return v, apperror.NewValidation("invalid report type").
			WithDetail("field", "report_type").
			WithDetail("allowed", []Type{SalesAnalysis, PurchaseRecommendation, InventoryForecast})
	}
	v.Type = t

	period, err := r.period(now)
	if err != nil {
		return v, err
	}
	v.Period = period

	v.Params = Params{Model: DefaultModel, Temperature: DefaultTemperature, MaxTokens: DefaultMaxTokens}
	if r.Model != "" {
		model := strings.TrimSpace(r.Model)
		if len(model) > 50 {
			return v, apperror.NewValidation("model name must not exceed 50 characters").WithDetail("field", "model")
		}
		if !modelRE.MatchString(model) {
			return v, apperror.NewValidation("model name may only contain lowercase letters, digits, hyphens and colons").
				WithDetail("field", "model")
		}
		v.Params.Model = model
	}
	if r.Temperature != nil {
		if *r.Temperature < 0.1 || *r.Temperature > 2.0 {
			return v, apperror.NewValidation("temperature must be between 0.1 and 2.0").WithDetail("field", "temperature")
		}
		v.Params.Temperature = *r.Temperature
	}
	if r.MaxTokens != nil {
		if *r.MaxTokens < 100 || *r.MaxTokens > 4000 {
			return v, apperror.NewValidation("max tokens must be between 100 and 4000").WithDetail("field", "max_tokens")
		}
		v.Params.MaxTokens = *r.MaxTokens
	}
	if v.Params.Temperature > 1.5 && v.Params.MaxTokens > 3000 {
		return v, apperror.NewValidation("high temperature combined with many tokens is not allowed; lower one of them")
	}
	return v, nil
}

func (r GenerateRequest) period(now time.Time) (Period, error) {
	if (r.StartDate == nil) != (r.EndDate == nil) {
		return Period{}, apperror.NewValidation("start and end dates must be given together").
			WithDetail("field", "start_date")
	}
	if r.StartDate == nil {
		return Period{Start: truncateDay(now.Add(-DefaultWindow)), End: truncateDay(now)}, nil
	}

	start, end := truncateDay(*r.StartDate), truncateDay(*r.EndDate)
	today := truncateDay(now)
	if start.After(today) || end.After(today) {
		return Period{}, apperror.NewValidation("dates must not be in the future")
	}
	if start.After(end) {
		return Period{}, apperror.NewValidation("start date must not be after end date")
	}
	if days := int(end.Sub(start).Hours() / 24); days > maxRangeDays {
		return Period{}, apperror.NewValidation(fmt.Sprintf("date range must not exceed %d days", maxRangeDays)).
			WithDetail("days", days)
	}
	return Period{Start: start, End: end}, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
