package handler

import (
	"net/http"

	"github.com/sevigo/pr-triage/internal/config"
)

// StatusHandler reports service liveness and which external integrations have
// credentials configured. Presence only; tokens are not validated here.
type StatusHandler struct {
	cfg *config.Config
}

// NewStatusHandler creates a status handler over the loaded configuration.
func NewStatusHandler(cfg *config.Config) *StatusHandler {
	return &StatusHandler{cfg: cfg}
}

type statusResponse struct {
	Service         string            `json:"service"`
	Status          string            `json:"status"`
	WebhookEndpoint string            `json:"webhook_endpoint"`
	Integrations    map[string]string `json:"integrations"`
}

func (h *StatusHandler) Handle(w http.ResponseWriter, _ *http.Request) {
	aiOK, aiMissing := h.cfg.AI.BackendConfigured()

	writeJSON(w, http.StatusOK, statusResponse{
		Service:         "GitHub PR Triaging Agent",
		Status:          "running",
		WebhookEndpoint: "/api/github-webhook",
		Integrations: map[string]string{
			"ai":     presence(aiOK, aiMissing),
			"slack":  presence(h.cfg.Slack.BotToken != "", "SLACK_BOT_TOKEN"),
			"github": presence(h.cfg.GitHub.Token != "", "GITHUB_TOKEN"),
		},
	})
}

func presence(configured bool, missing string) string {
	if configured {
		return "configured"
	}
	return "missing " + missing
}
