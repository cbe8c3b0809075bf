// Package main is the entry point for the negocio background worker.
// It refreshes local product prices from the exchange-rate feed on a cron schedule.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"negocio/internal/config"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/infrastructure/clients/exchangerate"
	"negocio/internal/infrastructure/scheduler"
	"negocio/internal/infrastructure/storage/postgres"
	"negocio/internal/infrastructure/storage/postgres/catalog_repo"
	"negocio/pkg/logger"
)

func main() {
	once := flag.Bool("once", false, "refresh prices once and exit")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
		Service:     "negocio-worker",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting negocio worker")

	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.MaxConns = 2
	poolCfg.MinConns = 0
	poolCfg.ApplicationName = "negocio-worker"
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	refresher := product.NewPriceRefresher(
		exchangerate.NewClient(exchangerate.Config{
			URL:     cfg.Rates.FeedURL,
			Timeout: cfg.Rates.FeedTimeout,
		}),
		catalog_repo.NewProductRepo(txm),
	)

	if *once {
		res, err := refresher.Refresh(ctx)
		if err != nil {
			log.Fatalw("price refresh failed", "error", err)
		}
		log.Infow("prices refreshed", "rate", res.Rate.String(), "updated", res.Updated)
		return
	}

	sched := scheduler.New(log, cfg.Rates.FeedTimeout*3)
	if err := sched.Add("refresh-prices", cfg.Rates.RefreshCron, refresher.RefreshScheduled); err != nil {
		log.Fatalw("failed to schedule price refresh", "error", err, "cron", cfg.Rates.RefreshCron)
	}

	if err := sched.Add("pool-stats", "@every 15m", func(ctx context.Context) error {
		postgres.LogPoolStats(ctx, pool)
		return nil
	}); err != nil {
		log.Fatalw("failed to schedule pool stats", "error", err)
	}

	// Prices should not wait a full period after a restart.
	sched.RunNow("refresh-prices", refresher.RefreshScheduled)
	sched.Start()
	log.Infow("worker started", "cron", cfg.Rates.RefreshCron)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer stopCancel()
	sched.Stop(stopCtx)

	log.Info("worker stopped")
}
