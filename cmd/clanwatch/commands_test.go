package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/edgard/clanwatch/internal/errors"
)

type fakeAPI struct {
	mu       sync.Mutex
	calls    int
	messages []string
}

func newFakeAPI(t *testing.T, members string) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/clans/", func(w http.ResponseWriter, _ *http.Request) {
		api.mu.Lock()
		api.calls++
		api.mu.Unlock()
		_, _ = w.Write([]byte(members))
	})
	mux.HandleFunc("/notify", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		api.mu.Lock()
		api.calls++
		api.messages = append(api.messages, r.PostForm.Get("message"))
		api.mu.Unlock()
		_, _ = w.Write([]byte(`{"status":200}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api, srv
}

func setEnv(t *testing.T, srv *httptest.Server, accessKey, token string) {
	t.Helper()
	t.Setenv("CLANWATCH_CLAN_ACCESS_KEY", "")
	t.Setenv("CLANWATCH_NOTIFY_TOKEN", "")
	t.Setenv("CLANWATCH_NOTIFY_KIND", "")
	t.Setenv("CR_ACCESS_KEY", accessKey)
	t.Setenv("LINE_NOTIFY_ACCESS_TOKEN", token)
	t.Setenv("CLANWATCH_CLAN_BASE_URL", srv.URL)
	t.Setenv("CLANWATCH_NOTIFY_URL", srv.URL+"/notify")
	t.Setenv("CLANWATCH_CLAN_TAG", "#228UCY92")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCommandNotifiesInactiveMembers(t *testing.T) {
	api, srv := newFakeAPI(t, `{"items":[
		{"name":"A","lastSeen":"20200101T000000.000Z"},
		{"name":"B","lastSeen":"20990101T000000.000Z"}
	]}`)
	setEnv(t, srv, "cr-key", "line-token")

	out, err := execute(t, "run")
	require.NoError(t, err)
	assert.Equal(t, "ok: 1 件取得しました\n", out)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, []string{"\nA: 2020-01-01"}, api.messages)
}

func TestRunCommandNothingInactive(t *testing.T) {
	api, srv := newFakeAPI(t, `{"items":[{"name":"B","lastSeen":"20990101T000000.000Z"}]}`)
	setEnv(t, srv, "cr-key", "line-token")

	out, err := execute(t, "run")
	require.NoError(t, err)
	assert.Equal(t, "ok: 0 件取得しました\n", out)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, 1, api.calls, "only the member list is requested")
	assert.Empty(t, api.messages)
}

func TestRunCommandMissingConfiguration(t *testing.T) {
	api, srv := newFakeAPI(t, `{"items":[]}`)
	setEnv(t, srv, "", "line-token")

	_, err := execute(t, "run")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfig, apperrors.Code(err))

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Zero(t, api.calls, "no request may be made before configuration is valid")
}

func TestRunCommandFetchFailure(t *testing.T) {
	api, srv := newFakeAPI(t, `not json`)
	setEnv(t, srv, "cr-key", "line-token")

	_, err := execute(t, "run")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeFetch, apperrors.Code(err))

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Empty(t, api.messages)
}

func TestRunExitCode(t *testing.T) {
	_, srv := newFakeAPI(t, `{"items":[]}`)
	setEnv(t, srv, "", "")

	assert.Equal(t, 1, run(context.Background(), []string{"run"}))
	assert.Equal(t, 1, run(context.Background(), []string{"unknown-command"}))
}
