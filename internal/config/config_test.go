package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/negocio")
	t.Setenv("RATE_REFRESH_CRON", "")
	t.Setenv("INVOICE_MAX_ATTEMPTS", "")

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "0 */6 * * *", cfg.Rates.RefreshCron)
	assert.Equal(t, 3, cfg.Invoice.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "deepseek-chat", cfg.AI.Model)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/negocio")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("RATE_FEED_TIMEOUT", "3s")
	t.Setenv("INVOICE_MAX_ATTEMPTS", "5")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, 3*time.Second, cfg.Rates.FeedTimeout)
	assert.Equal(t, 5, cfg.Invoice.MaxAttempts)
	assert.True(t, cfg.AuthEnabled())
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestFromEnv_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("AI_TIMEOUT", "soon")
	t.Setenv("DB_AUTO_MIGRATE", "maybe")

	cfg := FromEnv()

	assert.Equal(t, 10, cfg.Database.MaxConns)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		t.Setenv("DATABASE_URL", "postgres://localhost/negocio")
		return FromEnv()
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"missing database", func(c *Config) { c.Database.URL = "" }, "DATABASE_URL"},
		{"zero attempts", func(c *Config) { c.Invoice.MaxAttempts = 0 }, "INVOICE_MAX_ATTEMPTS"},
		{"empty cron", func(c *Config) { c.Rates.RefreshCron = "" }, "RATE_REFRESH_CRON"},
		{"no pool", func(c *Config) { c.Database.MaxConns = 0 }, "DB_MAX_CONNS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=postgres://file/negocio\nHTTP_ADDR=:7070\n"), 0o600))

	t.Setenv("DATABASE_URL", "")
	t.Setenv("HTTP_ADDR", "")
	// godotenv does not override variables that are already set, so unset them.
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	require.NoError(t, os.Unsetenv("HTTP_ADDR"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://file/negocio", cfg.Database.URL)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/negocio")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/negocio", cfg.Database.URL)
}
