package llm

import (
	"encoding/json"
	"strings"

	"github.com/sevigo/pr-triage/internal/core"
)

// manualReviewComment is used when the structured response is unusable.
const manualReviewComment = "manual review required"

// parseStructuredResponse extracts a ReviewResult from the model's structured
// output. It tolerates common LLM quirks:
// - Response wrapped in ```json ... ``` fences
// - Preamble or trailing prose around the JSON object
// Parse failures and missing keys fall back to NEEDS_REVIEW; a non-canonical
// verdict is normalized to NEEDS_REVIEW while keeping the model's comment.
func parseStructuredResponse(raw string) core.ReviewResult {
	fallback := core.ReviewResult{Verdict: core.VerdictNeedsReview, Comment: manualReviewComment}

	cleaned := stripCodeFence(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return fallback
	}

	var payload struct {
		Verdict string `json:"verdict"`
		Comment string `json:"comment"`
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &payload); err != nil {
		return fallback
	}
	if payload.Verdict == "" || payload.Comment == "" {
		return fallback
	}

	result := core.ReviewResult{
		Verdict: core.Verdict(payload.Verdict),
		Comment: payload.Comment,
	}
	if !result.Verdict.IsValid() {
		result.Verdict = core.VerdictNeedsReview
	}
	return result
}

// stripCodeFence removes ``` wrapping that some LLMs add around their output.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return s
	}
	inner := trimmed[idx+1:]
	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return strings.TrimSpace(inner)
}
