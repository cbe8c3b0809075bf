package reports

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negocio/internal/core/apperror"
	"negocio/internal/core/id"
	"negocio/internal/core/types"
)

type memRepo struct {
	reports map[id.ID]*Report
}

func (m *memRepo) Create(_ context.Context, r *Report) error {
	m.reports[r.ID] = r
	return nil
}

func (m *memRepo) GetByID(_ context.Context, reportID id.ID, userID string) (*Report, error) {
	r, ok := m.reports[reportID]
	if !ok || r.UserID != userID {
		return nil, apperror.NewNotFound("ai_report", reportID)
	}
	return r, nil
}

func (m *memRepo) List(_ context.Context, f ListFilter) ([]*Report, error) {
	var out []*Report
	for _, r := range m.reports {
		if r.UserID == f.UserID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, reportID id.ID, _ string) error {
	delete(m.reports, reportID)
	return nil
}

type fixedSales struct {
	from, to time.Time
	topN     int
}

func (f *fixedSales) SalesSnapshot(_ context.Context, from, to time.Time, topN int) (*SalesSnapshot, error) {
	f.from, f.to, f.topN = from, to, topN
	return &SalesSnapshot{
		InvoiceCount: 2,
		Revenue:      types.MustMoney("2400.00"),
		TopProducts:  []ProductSales{{Name: "Laptop HP", Quantity: 2}},
	}, nil
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
	params Params
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, p Params) (string, error) {
	g.prompt, g.params = prompt, p
	return g.text, g.err
}

var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestService(gen *stubGenerator) (*Service, *memRepo, *fixedSales) {
	repo := &memRepo{reports: map[id.ID]*Report{}}
	sales := &fixedSales{}
	svc := NewService(repo, sales, gen)
	svc.now = func() time.Time { return testNow }
	return svc, repo, sales
}

func TestGenerate_DefaultsToLast30Days(t *testing.T) {
	gen := &stubGenerator{text: "Sales grew.\nDetails follow."}
	svc, repo, sales := newTestService(gen)

	r, err := svc.Generate(context.Background(), "user-1", GenerateRequest{})
	require.NoError(t, err)

	assert.Equal(t, SalesAnalysis, r.Type)
	assert.Equal(t, time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC), sales.from)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), sales.to)
	assert.Equal(t, DefaultTopProducts, sales.topN)
	assert.Equal(t, Params{Model: "deepseek-chat", Temperature: 0.7, MaxTokens: 2000}, gen.params)
	assert.Contains(t, gen.prompt, "Laptop HP")
	assert.Contains(t, gen.prompt, "Key trends")
	assert.Equal(t, "Sales grew....", r.Summary())
	assert.Same(t, r, repo.reports[r.ID])
	assert.Nil(t, r.Metadata["generationFailed"])
}

func TestGenerate_GeneratorErrorIsStored(t *testing.T) {
	gen := &stubGenerator{err: errors.New("401 unauthorized")}
	svc, repo, _ := newTestService(gen)

	r, err := svc.Generate(context.Background(), "", GenerateRequest{Type: "recomendacion_compras"})
	require.NoError(t, err)

	assert.Equal(t, PurchaseRecommendation, r.Type)
	assert.Equal(t, "error generating report: 401 unauthorized", r.Text)
	assert.Equal(t, true, r.Metadata["generationFailed"])
	assert.Len(t, repo.reports, 1)
}

func TestGenerate_ValidationRules(t *testing.T) {
	day := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	f := func(v float64) *float64 { return &v }
	n := func(v int) *int { return &v }

	tests := []struct {
		name string
		req  GenerateRequest
	}{
		{"unknown type", GenerateRequest{Type: "weekly"}},
		{"only start", GenerateRequest{StartDate: day(2026, 3, 1)}},
		{"future end", GenerateRequest{StartDate: day(2026, 3, 1), EndDate: day(2026, 3, 20)}},
		{"start after end", GenerateRequest{StartDate: day(2026, 3, 10), EndDate: day(2026, 3, 1)}},
		{"range over two years", GenerateRequest{StartDate: day(2024, 1, 1), EndDate: day(2026, 3, 1)}},
		{"uppercase model", GenerateRequest{Model: "DeepSeek"}},
		{"long model", GenerateRequest{Model: strings.Repeat("a", 51)}},
		{"temperature too low", GenerateRequest{Temperature: f(0.05)}},
		{"temperature too high", GenerateRequest{Temperature: f(2.5)}},
		{"too few tokens", GenerateRequest{MaxTokens: n(50)}},
		{"too many tokens", GenerateRequest{MaxTokens: n(5000)}},
		{"risky combination", GenerateRequest{Temperature: f(1.6), MaxTokens: n(3500)}},
	}

	gen := &stubGenerator{text: "ok"}
	svc, repo, _ := newTestService(gen)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(context.Background(), "u", tt.req)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
	assert.Empty(t, repo.reports)
}

func TestGenerate_ExplicitRangeAndParams(t *testing.T) {
	gen := &stubGenerator{text: "forecast"}
	svc, _, sales := newTestService(gen)
	start := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	temp, tokens := 1.6, 3000

	r, err := svc.Generate(context.Background(), "u", GenerateRequest{
		Type:        "INVENTORY_FORECAST",
		StartDate:   &start,
		EndDate:     &end,
		Model:       "deepseek-reasoner",
		Temperature: &temp,
		MaxTokens:   &tokens,
	})
	require.NoError(t, err)

	assert.Equal(t, InventoryForecast, r.Type)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), sales.from)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), sales.to)
	assert.Equal(t, "deepseek-reasoner", gen.params.Model)
	assert.Contains(t, gen.prompt, "between 2026-01-01 and 2026-01-31")
}

func TestGenerate_ConfiguredDefaultModel(t *testing.T) {
	gen := &stubGenerator{text: "ok"}
	svc, _, _ := newTestService(gen)
	svc.WithDefaultModel("deepseek-reasoner")

	_, err := svc.Generate(context.Background(), "u", GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "deepseek-reasoner", gen.params.Model)

	_, err = svc.Generate(context.Background(), "u", GenerateRequest{Model: "llama3:8b"})
	require.NoError(t, err)
	assert.Equal(t, "llama3:8b", gen.params.Model)
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	svc, _, _ := newTestService(&stubGenerator{text: "x"})
	ctx := context.Background()

	r, err := svc.Generate(ctx, "owner", GenerateRequest{})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, r.ID, "someone-else")
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "report not found", apperror.From(err).Message)

	got, err := svc.GetByID(ctx, r.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestReport_Summary(t *testing.T) {
	long := strings.Repeat("é", 150)
	r := &Report{Text: long + "\nsecond"}
	assert.Equal(t, strings.Repeat("é", 100)+"...", r.Summary())

	assert.Equal(t, "...", (&Report{}).Summary())
}
