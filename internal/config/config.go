// Package config loads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full settings surface of the server and worker binaries.
type Config struct {
	Env      string
	LogLevel string

	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Rates    RatesConfig
	AI       AIConfig
	Invoice  InvoiceConfig
}

type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL      string
	MaxConns int

	// AutoMigrate applies embedded migrations when the server starts
	AutoMigrate bool
}

// AuthConfig holds the bearer token secret. Empty disables authentication.
type AuthConfig struct {
	JWTSecret string
}

// RatesConfig configures the exchange-rate feed and the refresh schedule.
type RatesConfig struct {
	FeedURL     string
	FeedTimeout time.Duration
	RefreshCron string
}

type AIConfig struct {
	URL     string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type InvoiceConfig struct {
	MaxAttempts int
}

// Load reads envFile when given (a missing file is fine), then the
// environment, and validates the result.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv materializes a Config from the current environment without validating it.
func FromEnv() *Config {
	return &Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:         os.Getenv("DATABASE_URL"),
			MaxConns:    getEnvInt("DB_MAX_CONNS", 10),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Rates: RatesConfig{
			FeedURL:     os.Getenv("RATE_FEED_URL"),
			FeedTimeout: getEnvDuration("RATE_FEED_TIMEOUT", 10*time.Second),
			RefreshCron: getEnv("RATE_REFRESH_CRON", "0 */6 * * *"),
		},
		AI: AIConfig{
			URL:     getEnv("AI_API_URL", "https://api.deepseek.com/chat/completions"),
			APIKey:  os.Getenv("AI_API_KEY"),
			Model:   getEnv("AI_MODEL", "deepseek-chat"),
			Timeout: getEnvDuration("AI_TIMEOUT", 60*time.Second),
		},
		Invoice: InvoiceConfig{
			MaxAttempts: getEnvInt("INVOICE_MAX_ATTEMPTS", 3),
		},
	}
}

// Validate reports the first missing or malformed setting.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	switch {
	case c.Database.URL == "":
		return errors.New("DATABASE_URL must be provided")
	case c.Database.MaxConns <= 0:
		return errors.New("DB_MAX_CONNS must be positive")
	case c.HTTP.Addr == "":
		return errors.New("HTTP_ADDR must not be empty")
	case c.HTTP.ShutdownTimeout <= 0:
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	case c.Rates.RefreshCron == "":
		return errors.New("RATE_REFRESH_CRON must not be empty")
	case c.Invoice.MaxAttempts < 1:
		return errors.New("INVOICE_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// IsDevelopment reports whether the logger should use the development encoder.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// AuthEnabled is false when no JWT secret is configured.
func (c *Config) AuthEnabled() bool {
	return c.Auth.JWTSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
