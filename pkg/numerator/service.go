// Package numerator allocates gapless document numbers such as FAC-2026-00001.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Querier is the single method the numerator needs; pgx.Tx and pgxpool.Pool satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "FAC")
	Prefix string

	IncludeYear bool

	// PadWidth is the minimum number width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig numbers per year: PREFIX-YYYY-NNNNN.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

// Service increments a row in sys_sequences per key.
// Called inside the document's transaction the counter update rolls back with it, so numbers stay gapless.
type Service struct {
	querier func(ctx context.Context) Querier
	cfg     Config
	now     func() time.Time
}

// New creates a numerator. querier returns the transaction bound to ctx, or the pool.
func New(cfg Config, querier func(ctx context.Context) Querier) *Service {
	return &Service{querier: querier, cfg: cfg, now: time.Now}
}

const nextSQL = `
INSERT INTO sys_sequences (key, current_val)
VALUES ($1, 1)
ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
RETURNING current_val`

// Next returns the next formatted number for the current period.
func (s *Service) Next(ctx context.Context) (string, error) {
	if s == nil || s.querier == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	period := s.now().UTC()
	key := buildKey(s.cfg, period)

	var num int64
	if err := s.querier(ctx).QueryRow(ctx, nextSQL, key).Scan(&num); err != nil {
		return "", fmt.Errorf("next number for %s: %w", key, err)
	}
	return formatNumber(s.cfg, period, num), nil
}

func buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", cfg.Prefix, period.Format("2006"))
	default:
		return cfg.Prefix
	}
}

func formatNumber(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}
	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}
