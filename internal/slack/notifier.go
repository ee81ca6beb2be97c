// Package slack routes triage results to team channels.
package slack

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/core"
)

// fallbackChannel receives messages for verdicts missing from the channel map.
const fallbackChannel = "#dev-main"

// Notifier delivers a triage result to the channel selected by its verdict.
// Delivery failure is not fatal to a triage run; callers log and continue.
type Notifier interface {
	Notify(ctx context.Context, result core.ReviewResult, prURL string) error
}

type notifier struct {
	client   *slack.Client
	channels map[core.Verdict]string
	logger   *slog.Logger
}

// New creates a Notifier from the Slack section of the configuration. Without
// a bot token the notifier stays inert and reports every delivery as failed,
// which callers treat as a warning.
func New(cfg *config.Config, channels map[core.Verdict]string, logger *slog.Logger) Notifier {
	var client *slack.Client
	if cfg.Slack.BotToken != "" {
		client = slack.New(cfg.Slack.BotToken)
	}
	if channels == nil {
		channels = config.DefaultChannelMap()
	}
	return &notifier{client: client, channels: channels, logger: logger}
}

func (n *notifier) Notify(ctx context.Context, result core.ReviewResult, prURL string) error {
	if n.client == nil {
		return fmt.Errorf("slack client is not configured")
	}

	channel := n.channelFor(result.Verdict)
	message := formatMessage(result, prURL)

	_, ts, err := n.client.PostMessageContext(ctx, channel, slack.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("posting to %s: %w", channel, err)
	}

	n.logger.Info("slack message sent", "channel", channel, "ts", ts, "verdict", result.Verdict)
	return nil
}

func (n *notifier) channelFor(verdict core.Verdict) string {
	if channel, ok := n.channels[verdict]; ok {
		return channel
	}
	return fallbackChannel
}

// formatMessage renders the plain-text notification, with an urgency marker
// for critical verdicts.
func formatMessage(result core.ReviewResult, prURL string) string {
	switch result.Verdict {
	case core.VerdictCritical:
		return fmt.Sprintf("🚨 CRITICAL PR: <!here> AI found a critical issue. %s %s", result.Comment, prURL)
	case core.VerdictGood:
		return fmt.Sprintf("✅ PR Approved: AI review passed. %s %s", result.Comment, prURL)
	default:
		return fmt.Sprintf("👀 Review Needed: %s %s", result.Comment, prURL)
	}
}
