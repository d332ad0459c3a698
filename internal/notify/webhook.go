package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/edgard/clanwatch/internal/errors"
)

// Webhook posts the message as the form field "message" to a LINE Notify style
// endpoint authenticated with a bearer token.
type Webhook struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewWebhook creates a webhook notifier. A nil httpClient means http.DefaultClient.
func NewWebhook(endpoint, token string, httpClient *http.Client) *Webhook {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Webhook{
		endpoint:   endpoint,
		token:      token,
		httpClient: httpClient,
	}
}

// Notify sends message. Transport failures and non-2xx statuses are DELIVERY errors.
func (w *Webhook) Notify(ctx context.Context, message string) error {
	form := url.Values{"message": {message}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return apperrors.NewDeliveryError("failed to create notification request", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return apperrors.NewDeliveryError("failed to send notification", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.NewDeliveryError("notification rejected", fmt.Errorf("status %d", resp.StatusCode))
	}

	return nil
}
