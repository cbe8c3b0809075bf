// Package main is the entry point for the negocio API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"negocio/internal/config"
	"negocio/internal/domain/auth"
	"negocio/internal/domain/catalogs/category"
	"negocio/internal/domain/catalogs/client"
	"negocio/internal/domain/catalogs/item"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/domain/documents/invoice"
	"negocio/internal/domain/reports"
	"negocio/internal/infrastructure/clients/deepseek"
	"negocio/internal/infrastructure/clients/exchangerate"
	v1 "negocio/internal/infrastructure/http/v1"
	"negocio/internal/infrastructure/http/v1/middleware"
	"negocio/internal/infrastructure/storage/postgres"
	"negocio/internal/infrastructure/storage/postgres/catalog_repo"
	"negocio/internal/infrastructure/storage/postgres/document_repo"
	"negocio/internal/infrastructure/storage/postgres/report_repo"
	"negocio/pkg/logger"
	"negocio/pkg/numerator"
)

var version = "dev"

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
		Service:     "negocio-server",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	log.Infow("starting negocio server", "version", version, "env", cfg.Env)

	// --- Database ---
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(cfg.Database.URL, log); err != nil {
			log.Fatalw("failed to migrate database", "error", err)
		}
	}

	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	poolCfg.ApplicationName = "negocio-server"
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)

	// --- Repositories ---
	clientRepo := catalog_repo.NewClientRepo(txm)
	categoryRepo := catalog_repo.NewCategoryRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)
	itemRepo := catalog_repo.NewItemRepo(txm)
	invoiceRepo := document_repo.NewInvoiceRepo(txm)
	salesRepo := report_repo.NewSalesRepo(txm)
	aiReportRepo, err := report_repo.NewAIReportRepo(txm)
	if err != nil {
		log.Fatalw("failed to create report repository", "error", err)
	}

	// --- Services ---
	clientService := client.NewService(clientRepo, txm)
	categoryService := category.NewService(categoryRepo, txm)
	productService := product.NewService(productRepo, categoryRepo, txm)
	itemService := item.NewService(itemRepo, productRepo, productRepo, txm)

	invoiceNumbers := numerator.New(numerator.DefaultConfig("FAC"), func(ctx context.Context) numerator.Querier {
		return txm.GetQuerier(ctx)
	})
	invoiceService := invoice.NewService(invoice.Deps{
		Invoices:    invoiceRepo,
		Clients:     clientService,
		Products:    productRepo,
		Items:       itemRepo,
		Numbers:     invoiceNumbers,
		TxManager:   txm,
		MaxAttempts: cfg.Invoice.MaxAttempts,
		Retryable:   postgres.IsRetryable,
	})

	rates := exchangerate.NewClient(exchangerate.Config{
		URL:     cfg.Rates.FeedURL,
		Timeout: cfg.Rates.FeedTimeout,
	})
	refresher := product.NewPriceRefresher(rates, productRepo)

	generator := deepseek.NewClient(deepseek.Config{
		URL:     cfg.AI.URL,
		APIKey:  cfg.AI.APIKey,
		Timeout: cfg.AI.Timeout,
	})
	reportService := reports.NewService(aiReportRepo, salesRepo, generator).WithDefaultModel(cfg.AI.Model)
	if cfg.AI.APIKey == "" {
		log.Warn("AI_API_KEY is not set; generated reports will carry the provider error")
	}

	// --- Auth ---
	var validator middleware.JWTValidator
	if cfg.AuthEnabled() {
		validator = auth.NewJWTService(auth.DefaultJWTConfig(cfg.Auth.JWTSecret))
		log.Info("bearer authentication enabled")
	} else {
		log.Warn("JWT_SECRET is not set; API is open")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:       log,
		DB:           pool,
		Version:      version,
		JWTValidator: validator,
		Clients:      clientService,
		Categories:   categoryService,
		Products:     productService,
		Items:        itemService,
		Refresher:    refresher,
		Invoices:     invoiceService,
		Reports:      reportService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
