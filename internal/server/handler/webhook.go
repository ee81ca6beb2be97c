package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-triage/internal/core"
)

// WebhookTriager runs the triage pipeline for a webhook-delivered event.
type WebhookTriager interface {
	TriageWebhook(ctx context.Context, event *core.TriageEvent) (core.ReviewResult, error)
}

// WebhookHandler processes incoming pull request webhooks from GitHub.
type WebhookHandler struct {
	triager WebhookTriager
	logger  *slog.Logger
}

// NewWebhookHandler creates a new webhook handler backed by the given triager.
func NewWebhookHandler(triager WebhookTriager, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{triager: triager, logger: logger}
}

// webhookResponse is the envelope every webhook reply carries. Status is one
// of "success", "ignored", or "error".
type webhookResponse struct {
	Status  string       `json:"status"`
	Reason  string       `json:"reason,omitempty"`
	Message string       `json:"message,omitempty"`
	Verdict core.Verdict `json:"verdict,omitempty"`
}

// Handle processes GitHub webhook requests. Every reply is HTTP 200, with
// the outcome carried in the status field; error status codes would feed the
// provider's redelivery retries.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil || len(payload) == 0 {
		writeJSON(w, http.StatusOK, webhookResponse{Status: "error", Message: "No payload"})
		return
	}

	eventType := r.Header.Get("X-GitHub-Event")
	if eventType != "pull_request" {
		writeJSON(w, http.StatusOK, webhookResponse{Status: "ignored", Reason: "Not a pull_request event"})
		return
	}

	parsed, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		h.logger.Error("could not parse webhook payload", "error", err)
		writeJSON(w, http.StatusOK, webhookResponse{Status: "error", Message: "Invalid payload"})
		return
	}

	prEvent, ok := parsed.(*github.PullRequestEvent)
	if !ok {
		writeJSON(w, http.StatusOK, webhookResponse{Status: "ignored", Reason: "Not a pull_request event"})
		return
	}

	if action := prEvent.GetAction(); action != "opened" {
		writeJSON(w, http.StatusOK, webhookResponse{Status: "ignored", Reason: fmt.Sprintf("Action is %s, not opened", action)})
		return
	}

	event, err := core.EventFromPullRequest(prEvent)
	if err != nil {
		h.logger.Error("invalid pull request payload", "error", err)
		writeJSON(w, http.StatusOK, webhookResponse{Status: "error", Message: "Missing required URLs"})
		return
	}

	result, err := h.triager.TriageWebhook(r.Context(), event)
	if err != nil {
		writeJSON(w, http.StatusOK, webhookResponse{Status: "error", Message: "Failed to fetch diff"})
		return
	}

	writeJSON(w, http.StatusOK, webhookResponse{Status: "success", Verdict: result.Verdict})
}
