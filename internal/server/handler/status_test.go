package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-triage/internal/config"
)

func getStatus(t *testing.T, cfg *config.Config) statusResponse {
	t.Helper()

	rec := httptest.NewRecorder()
	NewStatusHandler(cfg).Handle(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestStatusHandler(t *testing.T) {
	t.Run("Nothing configured", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.AI.Provider = "gemini"

		resp := getStatus(t, cfg)
		assert.Equal(t, "running", resp.Status)
		assert.Equal(t, "/api/github-webhook", resp.WebhookEndpoint)
		assert.Equal(t, "missing GEMINI_API_KEY", resp.Integrations["ai"])
		assert.Equal(t, "missing SLACK_BOT_TOKEN", resp.Integrations["slack"])
		assert.Equal(t, "missing GITHUB_TOKEN", resp.Integrations["github"])
	})

	t.Run("Everything configured", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.AI.Provider = "gemini"
		cfg.AI.GeminiAPIKey = "g"
		cfg.Slack.BotToken = "s"
		cfg.GitHub.Token = "t"

		resp := getStatus(t, cfg)
		assert.Equal(t, "configured", resp.Integrations["ai"])
		assert.Equal(t, "configured", resp.Integrations["slack"])
		assert.Equal(t, "configured", resp.Integrations["github"])
	})

	t.Run("Ollama backend needs no key", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.AI.Provider = "ollama"

		resp := getStatus(t, cfg)
		assert.Equal(t, "configured", resp.Integrations["ai"])
	})
}
