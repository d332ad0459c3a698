// Package notify delivers the inactivity report to a push-notification service.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/edgard/clanwatch/internal/config"
)

// Notifier delivers one message. Implementations do not retry.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// New builds the backend selected by cfg.Kind.
func New(cfg config.NotifyConfig, httpClient *http.Client, logger *slog.Logger) (Notifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "notifier", "kind", cfg.Kind)

	switch cfg.Kind {
	case "webhook":
		log.Debug("Using webhook notifier", "url", cfg.URL)
		return NewWebhook(cfg.URL, cfg.Token, httpClient), nil
	case "telegram":
		log.Debug("Using telegram notifier", "chat_id", cfg.TelegramChatID)
		return NewTelegram(cfg.Token, cfg.TelegramChatID, httpClient)
	default:
		return nil, fmt.Errorf("unknown notifier kind %q", cfg.Kind)
	}
}
