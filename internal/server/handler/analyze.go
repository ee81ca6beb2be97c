package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sevigo/pr-triage/internal/core"
)

// Analyzer runs the direct-analyze pipeline for a pull request URL.
type Analyzer interface {
	Analyze(ctx context.Context, prURL string) (core.ReviewResult, error)
}

// AnalyzeHandler serves on-demand pull request analysis requests. Unlike the
// webhook path it uses conventional HTTP status codes matching the error.
type AnalyzeHandler struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// NewAnalyzeHandler creates a new analyze handler backed by the given analyzer.
func NewAnalyzeHandler(analyzer Analyzer, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, logger: logger}
}

type analyzeRequest struct {
	PRURL string `json:"pr_url"`
}

type analyzeResponse struct {
	OK      bool         `json:"ok"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
	Verdict core.Verdict `json:"verdict,omitempty"`
	Comment string       `json:"comment,omitempty"`
	PRURL   string       `json:"pr_url,omitempty"`
}

func writeAnalyzeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, analyzeResponse{OK: false, Code: code, Message: message})
}

// Handle validates the request and runs the analysis pipeline.
func (h *AnalyzeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAnalyzeError(w, http.StatusBadRequest, core.CodeInvalidJSON, "Invalid JSON payload")
		return
	}
	if req.PRURL == "" {
		writeAnalyzeError(w, http.StatusBadRequest, core.CodeMissingURL, "PR URL is required")
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), req.PRURL)
	switch {
	case errors.Is(err, core.ErrInvalidURL):
		writeAnalyzeError(w, http.StatusBadRequest, core.CodeInvalidURL, "Invalid GitHub PR URL format")
		return
	case errors.Is(err, core.ErrMissingToken):
		writeAnalyzeError(w, http.StatusInternalServerError, core.CodeMissingToken,
			"GITHUB_TOKEN is not set. Provide a classic token with 'repo' or a fine-grained token with Pull Requests: Read.")
		return
	case errors.Is(err, core.ErrFetchFailed):
		writeAnalyzeError(w, http.StatusInternalServerError, core.CodeFetchFailed,
			"Failed to fetch PR diff. Check token permissions or try again later.")
		return
	case err != nil:
		h.logger.Error("analyze request failed", "pr_url", req.PRURL, "error", err)
		writeAnalyzeError(w, http.StatusInternalServerError, core.CodeInternalError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		OK:      true,
		Verdict: result.Verdict,
		Comment: result.Comment,
		PRURL:   req.PRURL,
	})
}
