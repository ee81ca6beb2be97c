// Package llm reduces model responses about a code diff into canonical
// review verdicts.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/core"
)

// TextGenerator is the narrow slice of a model backend the classifier needs.
// goframe's llms.Model satisfies it for both the Gemini and Ollama providers.
type TextGenerator interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// Classifier assigns a severity verdict to a diff. Implementations never
// return an error: any backend failure converges to NEEDS_REVIEW with an
// explanatory comment so that human review remains the safety net.
type Classifier interface {
	Classify(ctx context.Context, diff string) core.ReviewResult
}

// NewClassifier selects the classification protocol from the configuration.
// A nil model is allowed and yields the degraded placeholder result, matching
// a deployment without a configured backend.
func NewClassifier(cfg *config.Config, model TextGenerator, logger *slog.Logger) Classifier {
	switch cfg.AI.Protocol {
	case "structured":
		return &structuredClassifier{model: model, logger: logger}
	default:
		return &twoPassClassifier{model: model, logger: logger}
	}
}

// structuredClassifier asks the model for a single JSON object carrying both
// the verdict and the comment.
type structuredClassifier struct {
	model  TextGenerator
	logger *slog.Logger
}

func (c *structuredClassifier) Classify(ctx context.Context, diff string) core.ReviewResult {
	if c.model == nil {
		c.logger.Warn("no model backend configured, skipping AI analysis")
		return core.ReviewResult{Verdict: core.VerdictNeedsReview, Comment: core.UnavailableComment}
	}

	prompt := fmt.Sprintf("%s\n\nCode diff:\n\n%s", structuredPrompt, truncateDiff(diff))
	raw, err := c.model.Call(ctx, prompt)
	if err != nil {
		c.logger.Error("model call failed", "error", err)
		return degradedResult(err)
	}

	return parseStructuredResponse(raw)
}

// twoPassClassifier first asks the model to explain the issue in the diff,
// then asks it to classify its own explanation into a single verdict word.
// The final comment is the explanation, not the classification word.
type twoPassClassifier struct {
	model  TextGenerator
	logger *slog.Logger
}

func (c *twoPassClassifier) Classify(ctx context.Context, diff string) core.ReviewResult {
	if c.model == nil {
		c.logger.Warn("no model backend configured, skipping AI analysis")
		return core.ReviewResult{Verdict: core.VerdictNeedsReview, Comment: core.UnavailableComment}
	}

	explanation, err := c.model.Call(ctx, fmt.Sprintf("%s\n\nCode diff:\n\n%s", explainPrompt, truncateDiff(diff)))
	if err != nil {
		c.logger.Error("explanation pass failed", "error", err)
		return degradedResult(err)
	}
	if explanation == "" {
		explanation = "No response from AI"
	}

	classification, err := c.model.Call(ctx, fmt.Sprintf("%s\n\n%s", classifyPrompt, explanation))
	if err != nil {
		c.logger.Error("classification pass failed", "error", err)
		return degradedResult(err)
	}

	return core.ReviewResult{
		Verdict: core.NormalizeVerdict(classification),
		Comment: explanation,
	}
}

// degradedResult wraps a backend failure into the safe verdict.
func degradedResult(err error) core.ReviewResult {
	return core.ReviewResult{
		Verdict: core.VerdictNeedsReview,
		Comment: fmt.Sprintf("AI analysis error: %v - manual review required", err),
	}
}

func truncateDiff(diff string) string {
	if len(diff) > maxDiffChars {
		return diff[:maxDiffChars]
	}
	return diff
}
