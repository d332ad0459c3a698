// Package app manages the lifecycle of the long-running clanwatch service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/clanwatch/internal/config"
	"github.com/edgard/clanwatch/internal/tasks"
)

// Scheduler is the part of scheduler.Scheduler the app drives.
type Scheduler interface {
	Start() (int, error)
	Stop() error
}

// App runs the scheduler until its context is cancelled, optionally running the
// inactivity report once at startup.
type App struct {
	logger    *slog.Logger
	cfg       *config.Config
	taskMap   map[string]tasks.ScheduledTaskFunc
	scheduler Scheduler
}

// New creates an App from its dependencies.
func New(logger *slog.Logger, cfg *config.Config, taskMap map[string]tasks.ScheduledTaskFunc, scheduler Scheduler) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		logger:    logger.With("component", "app"),
		cfg:       cfg,
		taskMap:   taskMap,
		scheduler: scheduler,
	}
}

// Run starts all components and blocks until ctx is cancelled or a component fails.
// A failed run-on-start report is logged and does not stop the service.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting clanwatch...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Starting scheduler...")
		if _, err := a.scheduler.Start(); err != nil {
			a.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		a.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := a.scheduler.Stop(); err != nil {
			a.logger.Error("Error stopping scheduler", "error", err)
		}

		return nil
	})

	if a.cfg.Scheduler.RunOnStart {
		g.Go(func() error {
			task, ok := a.taskMap[config.DefaultReportTask]
			if !ok {
				return fmt.Errorf("task %q is not registered", config.DefaultReportTask)
			}

			a.logger.Info("Running inactivity report on start")
			if err := task(gCtx); err != nil {
				a.logger.Warn("Inactivity report on start failed", "error", err)
			}
			return nil
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("clanwatch stopped due to error", "error", err)
		return err
	}

	a.logger.Info("clanwatch stopped gracefully.")
	return nil
}
