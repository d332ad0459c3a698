package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-telegram/bot"

	apperrors "github.com/edgard/clanwatch/internal/errors"
)

// Telegram sends the message to a single chat through the Bot API.
type Telegram struct {
	bot    *bot.Bot
	chatID string
}

// NewTelegram creates a Telegram notifier. The bot identity is not checked at
// construction time, so no request is made until Notify.
func NewTelegram(token, chatID string, httpClient *http.Client, opts ...bot.Option) (*Telegram, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if chatID == "" {
		return nil, fmt.Errorf("telegram chat id cannot be empty")
	}

	options := []bot.Option{bot.WithSkipGetMe()}
	if httpClient != nil {
		options = append(options, bot.WithHTTPClient(httpClient.Timeout, httpClient))
	}
	options = append(options, opts...)

	b, err := bot.New(token, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{bot: b, chatID: chatID}, nil
}

// Notify sends message to the configured chat. Any API failure is a DELIVERY error.
func (t *Telegram) Notify(ctx context.Context, message string) error {
	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   message,
	})
	if err != nil {
		return apperrors.NewDeliveryError("failed to send telegram message", err)
	}
	return nil
}
