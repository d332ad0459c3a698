package notify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/clanwatch/internal/config"
	apperrors "github.com/edgard/clanwatch/internal/errors"
	"github.com/edgard/clanwatch/internal/logger"
	"github.com/edgard/clanwatch/internal/notify"
)

type webhookRequest struct {
	method      string
	auth        string
	contentType string
	message     string
}

func TestWebhookNotify(t *testing.T) {
	t.Parallel()

	requests := make(chan webhookRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		requests <- webhookRequest{
			method:      r.Method,
			auth:        r.Header.Get("Authorization"),
			contentType: r.Header.Get("Content-Type"),
			message:     r.PostForm.Get("message"),
		}
		_, _ = w.Write([]byte(`{"status":200,"message":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	n := notify.NewWebhook(srv.URL, "line-token", srv.Client())
	require.NoError(t, n.Notify(context.Background(), "\nA: 2023-01-01\nB & C: 2023-01-02"))

	got := <-requests
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "Bearer line-token", got.auth)
	assert.Equal(t, "application/x-www-form-urlencoded", got.contentType)
	assert.Equal(t, "\nA: 2023-01-01\nB & C: 2023-01-02", got.message)
}

func TestWebhookNotifyErrors(t *testing.T) {
	t.Parallel()

	t.Run("rejected status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":401,"message":"Invalid access token"}`))
		}))
		t.Cleanup(srv.Close)

		err := notify.NewWebhook(srv.URL, "bad", srv.Client()).Notify(context.Background(), "\nA: x")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeDelivery, apperrors.Code(err))
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		endpoint := srv.URL
		srv.Close()

		err := notify.NewWebhook(endpoint, "t", nil).Notify(context.Background(), "\nA: x")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeDelivery, apperrors.Code(err))
	})
}

type telegramRequest struct {
	path   string
	chatID string
	text   string
}

func newTelegramServer(t *testing.T, status int, body string) (*httptest.Server, chan telegramRequest) {
	t.Helper()

	requests := make(chan telegramRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(1 << 20)
		requests <- telegramRequest{
			path:   r.URL.Path,
			chatID: r.FormValue("chat_id"),
			text:   r.FormValue("text"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, requests
}

func TestTelegramNotify(t *testing.T) {
	t.Parallel()

	srv, requests := newTelegramServer(t, http.StatusOK,
		`{"ok":true,"result":{"message_id":7,"date":1672531200,"chat":{"id":-100123,"type":"group"}}}`)

	n, err := notify.NewTelegram("123:abc", "-100123", srv.Client(), bot.WithServerURL(srv.URL))
	require.NoError(t, err)
	require.NoError(t, n.Notify(context.Background(), "\nA: 2023-01-01"))

	got := <-requests
	assert.True(t, strings.HasSuffix(got.path, "/sendMessage"), "path %s", got.path)
	assert.Equal(t, "-100123", got.chatID)
	assert.Equal(t, "\nA: 2023-01-01", got.text)
}

func TestTelegramNotifyRejected(t *testing.T) {
	t.Parallel()

	srv, _ := newTelegramServer(t, http.StatusBadRequest,
		`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)

	n, err := notify.NewTelegram("123:abc", "-1", srv.Client(), bot.WithServerURL(srv.URL))
	require.NoError(t, err)

	err = n.Notify(context.Background(), "\nA: 2023-01-01")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDelivery, apperrors.Code(err))
}

func TestNewTelegramRequiresSettings(t *testing.T) {
	t.Parallel()

	_, err := notify.NewTelegram("", "1", nil)
	assert.Error(t, err)

	_, err = notify.NewTelegram("123:abc", "", nil)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	t.Parallel()

	client := &http.Client{Timeout: 5 * time.Second}

	n, err := notify.New(config.NotifyConfig{Kind: "webhook", URL: "https://example.test/notify", Token: "t"}, client, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &notify.Webhook{}, n)

	n, err = notify.New(config.NotifyConfig{Kind: "telegram", Token: "123:abc", TelegramChatID: "42"}, client, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, &notify.Telegram{}, n)

	_, err = notify.New(config.NotifyConfig{Kind: "pager", Token: "t"}, client, logger.Discard())
	assert.Error(t, err)
}
