// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	appctx "negocio/internal/core/context"
	"negocio/pkg/logger"
)

// JobFunc is one scheduled unit of work.
type JobFunc func(ctx context.Context) error

// Scheduler wraps a cron instance with logging and per-run timeouts.
type Scheduler struct {
	cron    *cron.Cron
	log     *logger.Logger
	timeout time.Duration
}

// New uses the standard five-field cron parser.
func New(log *logger.Logger, timeout time.Duration) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Scheduler{
		cron:    cron.New(),
		log:     log.WithComponent("scheduler"),
		timeout: timeout,
	}
}

// Add registers job under spec. Invalid specs are reported, not skipped.
func (s *Scheduler) Add(name, spec string, job JobFunc) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.log.Infow("job scheduled", "job", name, "spec", spec)
	return nil
}

// RunNow executes job once synchronously, with the same logging as a scheduled run.
func (s *Scheduler) RunNow(name string, job JobFunc) {
	s.run(name, job)
}

func (s *Scheduler) Start() {
	s.log.Info("starting scheduler")
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	s.log.Info("stopping scheduler")
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out with jobs still running")
	}
}

func (s *Scheduler) run(name string, job JobFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	ctx = appctx.WithTrace(ctx, appctx.NewTraceContext("", ""))
	ctx = logger.WithLogger(ctx, s.log.With("job", name))

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "job panicked", "panic", r)
		}
	}()

	start := time.Now()
	if err := job(ctx); err != nil {
		logger.Error(ctx, "job failed", "error", err, "duration", time.Since(start))
		return
	}
	logger.Info(ctx, "job finished", "duration", time.Since(start))
}
