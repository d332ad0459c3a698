// Package main is the AWS Lambda entrypoint: each invocation runs the
// inactivity report once and returns its status string.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/edgard/clanwatch/internal/config"
	"github.com/edgard/clanwatch/internal/logger"
	"github.com/edgard/clanwatch/internal/tasks"
)

// reportRunner is the part of tasks.InactivityReport the handler needs.
type reportRunner interface {
	Run(ctx context.Context) (string, error)
}

func main() {
	if err := config.LoadEnvFile(""); err != nil {
		slog.Warn("Failed to load .env file, using process environment", "error", err)
	}

	// Configuration is read once per cold start; a missing credential fails
	// the init phase so no invocation ever reaches the network.
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Log.Level, true)

	deps, err := tasks.NewTaskDeps(cfg, log)
	if err != nil {
		log.Error("Failed to build clients", "error", err)
		os.Exit(1)
	}
	report, err := tasks.NewInactivityReport(deps)
	if err != nil {
		log.Error("Failed to build inactivity report", "error", err)
		os.Exit(1)
	}

	lambda.Start(newHandler(report, log))
}

// newHandler adapts a report to the Lambda runtime. The event payload is ignored.
func newHandler(report reportRunner, log *slog.Logger) func(context.Context, json.RawMessage) (string, error) {
	return func(ctx context.Context, _ json.RawMessage) (string, error) {
		status, err := report.Run(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Inactivity report failed", "error", err)
			return "", err
		}
		log.InfoContext(ctx, "Inactivity report completed", "status", status)
		return status, nil
	}
}
