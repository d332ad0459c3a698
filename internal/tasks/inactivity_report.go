package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edgard/clanwatch/internal/inactivity"
	"github.com/edgard/clanwatch/internal/notify"
	"github.com/edgard/clanwatch/internal/report"
)

// InactivityReport fetches the clan members, picks the ones inactive for longer
// than the window, and notifies about them. It keeps no state between runs.
type InactivityReport struct {
	logger    *slog.Logger
	fetcher   MemberFetcher
	notifier  notify.Notifier
	formatter *report.Formatter
	tag       string
	window    time.Duration
	now       func() time.Time
}

// NewInactivityReport wires the report from deps.
func NewInactivityReport(deps TaskDeps) (*InactivityReport, error) {
	formatter, err := report.NewFormatter(report.Detail(deps.Config.Report.Detail))
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &InactivityReport{
		logger:    logger.With("task", "inactivity_report"),
		fetcher:   deps.Fetcher,
		notifier:  deps.Notifier,
		formatter: formatter,
		tag:       deps.Config.Clan.Tag,
		window:    deps.Config.Report.Window,
		now:       now,
	}, nil
}

// Run performs one invocation and returns a status such as "ok: 3 件取得しました".
// Nothing is sent when no member is inactive. The first error aborts the run.
func (r *InactivityReport) Run(ctx context.Context) (string, error) {
	members, err := r.fetcher.FetchMembers(ctx, r.tag)
	if err != nil {
		return "", fmt.Errorf("fetch members of %s: %w", r.tag, err)
	}

	now := r.now()
	deadline := inactivity.Deadline(now, r.window)

	inactive, err := inactivity.Filter(members, deadline)
	if err != nil {
		return "", fmt.Errorf("filter members: %w", err)
	}
	r.logger.InfoContext(ctx, "Filtered clan members",
		"clan_tag", r.tag,
		"members", len(members),
		"inactive", len(inactive),
		"deadline", deadline.UTC().Format(time.RFC3339))

	if len(inactive) > 0 {
		message, err := r.formatter.Format(inactive, now)
		if err != nil {
			return "", fmt.Errorf("format report: %w", err)
		}
		if err := r.notifier.Notify(ctx, message); err != nil {
			return "", fmt.Errorf("notify: %w", err)
		}
		r.logger.InfoContext(ctx, "Sent inactivity notification", "inactive", len(inactive))
	}

	return Status(len(inactive)), nil
}

// Status is the short summary returned by every successful run.
func Status(count int) string {
	return fmt.Sprintf("ok: %d 件取得しました", count)
}
