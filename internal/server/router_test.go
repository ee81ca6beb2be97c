package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/core"
	"github.com/sevigo/pr-triage/internal/github"
	"github.com/sevigo/pr-triage/internal/llm"
	"github.com/sevigo/pr-triage/internal/slack"
	"github.com/sevigo/pr-triage/internal/triage"
)

// newTestRouter wires the full pipeline with a real fetcher pointed at a local
// diff server while leaving the model backend and Slack unconfigured, so both
// degrade the way an empty deployment would.
func newTestRouter(t *testing.T, diffServerURL string) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.AI.Provider = "gemini"
	cfg.AI.Protocol = "two-pass"
	cfg.GitHub.APIBaseURL = diffServerURL
	cfg.GitHub.MirrorBaseURL = diffServerURL

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	fetcher := github.NewFetcher(cfg, logger)
	classifier := llm.NewClassifier(cfg, nil, logger)
	notifier := slack.New(cfg, nil, logger)
	svc := triage.NewService(cfg, fetcher, classifier, notifier, logger)

	return NewRouter(cfg, svc, logger)
}

func TestRouterEndToEnd(t *testing.T) {
	diffServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "diff --git a/main.go b/main.go")
	}))
	defer diffServer.Close()

	router := newTestRouter(t, diffServer.URL)

	t.Run("Health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Status reports missing integrations", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing GEMINI_API_KEY")
	})

	t.Run("Webhook with closed action is ignored", func(t *testing.T) {
		payload := fmt.Sprintf(`{"action": "closed", "pull_request": {"diff_url": %q, "html_url": "https://github.com/u/r/pull/1"}}`,
			diffServer.URL+"/pull/1.diff")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/github-webhook", bytes.NewReader([]byte(payload)))
		req.Header.Set("X-GitHub-Event", "pull_request")
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ignored", resp["status"])
	})

	t.Run("Webhook with opened action succeeds with canonical verdict", func(t *testing.T) {
		payload := fmt.Sprintf(`{"action": "opened", "pull_request": {"diff_url": %q, "html_url": "https://github.com/u/r/pull/1"}}`,
			diffServer.URL+"/pull/1.diff")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/github-webhook", bytes.NewReader([]byte(payload)))
		req.Header.Set("X-GitHub-Event", "pull_request")
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp["status"])
		assert.True(t, core.Verdict(resp["verdict"]).IsValid())
	})

	t.Run("Analyze without token reports MISSING_TOKEN", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/analyze-pr",
			bytes.NewReader([]byte(`{"pr_url": "https://github.com/u/r/pull/1"}`)))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), core.CodeMissingToken)
	})
}
