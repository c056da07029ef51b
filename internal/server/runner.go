// Package server runs the long-lived watch mode: periodic scans of the
// synced directories plus the event handlers.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/mediacat/internal/events"
	"github.com/vmunix/mediacat/internal/handlers"
	"github.com/vmunix/mediacat/internal/scanner"
)

// Scanner runs one pass over the synced directories.
type Scanner interface {
	Scan(ctx context.Context) (scanner.Report, error)
}

// Pruner drops old persisted events. *events.EventLog implements it.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Config for watch mode.
type Config struct {
	Interval       time.Duration // time between scans
	EventRetention time.Duration // zero keeps events forever
}

// Runner schedules scans and runs the event handlers.
type Runner struct {
	scanner Scanner
	bus     *events.Bus
	pruner  Pruner
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(s Scanner, bus *events.Bus, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		scanner: s,
		bus:     bus,
		config:  cfg,
		logger:  logger.With("component", "runner"),
	}
}

// SetPruner enables daily event pruning when EventRetention is set.
func (r *Runner) SetPruner(p Pruner) { r.pruner = p }

// Run scans immediately and then every Interval until ctx is cancelled.
// A scan still running when the next one is due is not overlapped.
func (r *Runner) Run(ctx context.Context) error {
	if r.config.Interval <= 0 {
		return fmt.Errorf("scan interval must be positive, got %s", r.config.Interval)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if _, err := sched.NewJob(
		gocron.DurationJob(r.config.Interval),
		gocron.NewTask(func() { r.scan(ctx) }),
		gocron.WithName("scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("schedule scan: %w", err)
	}

	if r.pruner != nil && r.config.EventRetention > 0 {
		if _, err := sched.NewJob(
			gocron.DurationJob(24*time.Hour),
			gocron.NewTask(func() { r.prune(ctx) }),
			gocron.WithName("prune-events"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		); err != nil {
			_ = sched.Shutdown()
			return fmt.Errorf("schedule event pruning: %w", err)
		}
	}

	activity := handlers.NewActivityHandler(r.bus, r.logger)
	for _, h := range []handlers.Handler{activity} {
		g.Go(func() error {
			r.logger.Debug("handler starting", "handler", h.Name())
			return h.Start(ctx)
		})
	}

	r.logger.Info("watching synced directories", "interval", r.config.Interval)
	sched.Start()

	g.Go(func() error {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			r.logger.Warn("scheduler shutdown", "error", err)
		}
		return ctx.Err()
	})

	return g.Wait()
}

func (r *Runner) scan(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	report, err := r.scanner.Scan(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			r.logger.Error("scan failed", "error", err)
		}
		return
	}
	if report.Added > 0 {
		r.logger.Info("staged new content", "added", report.Added)
	}
}

func (r *Runner) prune(ctx context.Context) {
	n, err := r.pruner.Prune(ctx, r.config.EventRetention)
	if err != nil {
		r.logger.Error("prune events", "error", err)
		return
	}
	if n > 0 {
		r.logger.Info("pruned events", "count", n)
	}
}
