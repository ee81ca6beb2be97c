package slack

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/core"
)

func TestChannelFor(t *testing.T) {
	n := &notifier{channels: config.DefaultChannelMap()}

	assert.Equal(t, "#dev-urgent", n.channelFor(core.VerdictCritical))
	assert.Equal(t, "#dev-main", n.channelFor(core.VerdictNeedsReview))
	assert.Equal(t, "#dev-feed", n.channelFor(core.VerdictGood))
	assert.Equal(t, fallbackChannel, n.channelFor(core.Verdict("UNKNOWN")))
}

func TestFormatMessage(t *testing.T) {
	const prURL = "https://github.com/user/repo/pull/1"

	tests := []struct {
		name     string
		result   core.ReviewResult
		contains []string
	}{
		{
			name:     "Critical carries urgency marker",
			result:   core.ReviewResult{Verdict: core.VerdictCritical, Comment: "drops a table"},
			contains: []string{"🚨 CRITICAL PR:", "<!here>", "drops a table", prURL},
		},
		{
			name:     "Needs review",
			result:   core.ReviewResult{Verdict: core.VerdictNeedsReview, Comment: "unclear intent"},
			contains: []string{"👀 Review Needed:", "unclear intent", prURL},
		},
		{
			name:     "Good",
			result:   core.ReviewResult{Verdict: core.VerdictGood, Comment: "clean change"},
			contains: []string{"✅ PR Approved:", "clean change", prURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := formatMessage(tt.result, prURL)
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestNotifyWithoutToken(t *testing.T) {
	cfg := &config.Config{}
	n := New(cfg, nil, slog.New(slog.NewTextHandler(os.Stdout, nil)))

	err := n.Notify(context.Background(), core.ReviewResult{Verdict: core.VerdictGood, Comment: "ok"}, "url")
	assert.ErrorContains(t, err, "not configured")
}
