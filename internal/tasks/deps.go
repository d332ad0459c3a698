// Package tasks implements the inactivity report pipeline and exposes it as
// named scheduled tasks.
package tasks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/edgard/clanwatch/internal/clan"
	"github.com/edgard/clanwatch/internal/config"
	"github.com/edgard/clanwatch/internal/notify"
)

// MemberFetcher returns the member list of a clan.
type MemberFetcher interface {
	FetchMembers(ctx context.Context, tag string) ([]clan.Member, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Fetcher  MemberFetcher
	Notifier notify.Notifier
	Config   *config.Config
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewTaskDeps builds the network clients described by cfg. Nothing is sent yet.
func NewTaskDeps(cfg *config.Config, logger *slog.Logger) (TaskDeps, error) {
	httpClient := &http.Client{Timeout: cfg.Clan.Timeout}

	notifier, err := notify.New(cfg.Notify, httpClient, logger)
	if err != nil {
		return TaskDeps{}, err
	}

	return TaskDeps{
		Logger:   logger,
		Fetcher:  clan.NewClient(cfg.Clan.BaseURL, cfg.Clan.AccessKey, httpClient),
		Notifier: notifier,
		Config:   cfg,
		Now:      time.Now,
	}, nil
}
