package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/edgard/clanwatch/internal/config"
)

// ScheduledTaskFunc defines the standard signature for all scheduled tasks.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns every scheduled task keyed by the name used in the
// scheduler configuration.
func RegisterAllTasks(deps TaskDeps) (map[string]ScheduledTaskFunc, error) {
	report, err := NewInactivityReport(deps)
	if err != nil {
		return nil, err
	}

	tasks := map[string]ScheduledTaskFunc{
		config.DefaultReportTask: newInactivityReportTask(report),
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	log.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks, nil
}

func newInactivityReportTask(report *InactivityReport) ScheduledTaskFunc {
	log := report.logger

	return func(ctx context.Context) error {
		startTime := time.Now()

		status, err := report.Run(ctx)
		duration := time.Since(startTime)
		if err != nil {
			log.ErrorContext(ctx, "Inactivity report failed", "error", err, "duration", duration)
			return err
		}

		log.InfoContext(ctx, "Inactivity report completed", "status", status, "duration", duration)
		return nil
	}
}
