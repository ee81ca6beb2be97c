package llm

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/core"
)

// fakeGenerator replays canned responses and records the prompts it receives.
type fakeGenerator struct {
	responses []string
	errs      []error
	prompts   []string
}

func (f *fakeGenerator) Call(_ context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	call := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	if call < len(f.errs) && f.errs[call] != nil {
		return "", f.errs[call]
	}
	if call < len(f.responses) {
		return f.responses[call], nil
	}
	return "", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newTestClassifier(protocol string, model TextGenerator) Classifier {
	cfg := &config.Config{}
	cfg.AI.Protocol = protocol
	return NewClassifier(cfg, model, testLogger())
}

func TestTwoPassClassifier(t *testing.T) {
	t.Run("Second pass is normalized, comment is the explanation", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{"The change drops the users table.", "  critical\n"}}
		c := newTestClassifier("two-pass", gen)

		result := c.Classify(context.Background(), "diff --git a/db.go b/db.go")
		assert.Equal(t, core.VerdictCritical, result.Verdict)
		assert.Equal(t, "The change drops the users table.", result.Comment)
		assert.Len(t, gen.prompts, 2)
		assert.Contains(t, gen.prompts[1], "The change drops the users table.")
	})

	t.Run("Unknown classification word falls back", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{"Some explanation.", "TERRIBLE"}}
		c := newTestClassifier("two-pass", gen)

		result := c.Classify(context.Background(), "diff")
		assert.Equal(t, core.VerdictNeedsReview, result.Verdict)
		assert.Equal(t, "Some explanation.", result.Comment)
	})

	t.Run("Empty explanation gets a placeholder comment", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{"", "GOOD"}}
		c := newTestClassifier("two-pass", gen)

		result := c.Classify(context.Background(), "diff")
		assert.Equal(t, core.VerdictGood, result.Verdict)
		assert.Equal(t, "No response from AI", result.Comment)
	})

	t.Run("First pass error degrades without raising", func(t *testing.T) {
		gen := &fakeGenerator{errs: []error{errors.New("backend unavailable")}}
		c := newTestClassifier("two-pass", gen)

		result := c.Classify(context.Background(), "diff")
		assert.Equal(t, core.VerdictNeedsReview, result.Verdict)
		assert.Contains(t, result.Comment, "backend unavailable")
		assert.Contains(t, result.Comment, "manual review required")
	})

	t.Run("Second pass error degrades without raising", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{"Some explanation.", ""}, errs: []error{nil, errors.New("timeout")}}
		c := newTestClassifier("two-pass", gen)

		result := c.Classify(context.Background(), "diff")
		assert.Equal(t, core.VerdictNeedsReview, result.Verdict)
		assert.Contains(t, result.Comment, "timeout")
	})

	t.Run("Diff is truncated before prompting", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{"ok", "GOOD"}}
		c := newTestClassifier("two-pass", gen)

		c.Classify(context.Background(), strings.Repeat("x", maxDiffChars*2))
		assert.LessOrEqual(t, len(gen.prompts[0]), len(explainPrompt)+maxDiffChars+20)
	})

	t.Run("Nil model yields placeholder", func(t *testing.T) {
		c := newTestClassifier("two-pass", nil)

		result := c.Classify(context.Background(), "diff")
		assert.Equal(t, core.VerdictNeedsReview, result.Verdict)
		assert.Equal(t, core.UnavailableComment, result.Comment)
	})
}

func TestStructuredClassifier(t *testing.T) {
	t.Run("Valid JSON response", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{`{"verdict": "GOOD", "comment": "well tested"}`}}
		c := newTestClassifier("structured", gen)

		result := c.Classify(context.Background(), "diff")
		assert.Equal(t, core.VerdictGood, result.Verdict)
		assert.Equal(t, "well tested", result.Comment)
		assert.Len(t, gen.prompts, 1)
	})

	t.Run("Non-canonical verdict normalizes, comment preserved", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{`{"verdict": "BAD", "comment": "x"}`}}
		c := newTestClassifier("structured", gen)

		result := c.Classify(context.Background(), "diff")
		assert.Equal(t, core.VerdictNeedsReview, result.Verdict)
		assert.Equal(t, "x", result.Comment)
	})

	t.Run("Backend error degrades without raising", func(t *testing.T) {
		gen := &fakeGenerator{errs: []error{errors.New("auth failed")}}
		c := newTestClassifier("structured", gen)

		result := c.Classify(context.Background(), "diff")
		assert.Equal(t, core.VerdictNeedsReview, result.Verdict)
		assert.Contains(t, result.Comment, "auth failed")
	})

	t.Run("Nil model yields placeholder", func(t *testing.T) {
		c := newTestClassifier("structured", nil)

		result := c.Classify(context.Background(), "diff")
		assert.Equal(t, core.VerdictNeedsReview, result.Verdict)
		assert.Equal(t, core.UnavailableComment, result.Comment)
	})
}
