// Package triage orchestrates the diff-to-verdict pipeline: fetch the pull
// request diff, classify it, and route the notification.
package triage

import (
	"context"
	"log/slog"

	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/core"
	"github.com/sevigo/pr-triage/internal/llm"
	"github.com/sevigo/pr-triage/internal/slack"
)

// DiffFetcher is the slice of the GitHub fetcher the pipeline depends on.
type DiffFetcher interface {
	Fetch(ctx context.Context, ref *core.PullRequestRef) (string, error)
	FetchWebhookDiff(ctx context.Context, diffURL string) (string, error)
}

// Service runs each pull request event start-to-finish on the caller's
// goroutine. It holds no mutable state beyond read-only configuration, so
// overlapping requests need no coordination.
type Service struct {
	cfg        *config.Config
	fetcher    DiffFetcher
	classifier llm.Classifier
	notifier   slack.Notifier
	logger     *slog.Logger
}

// NewService creates the triage pipeline with its collaborators.
func NewService(cfg *config.Config, fetcher DiffFetcher, classifier llm.Classifier, notifier slack.Notifier, logger *slog.Logger) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if fetcher == nil {
		panic("fetcher cannot be nil")
	}
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if notifier == nil {
		panic("notifier cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Service{cfg: cfg, fetcher: fetcher, classifier: classifier, notifier: notifier, logger: logger}
}

// TriageWebhook processes a webhook-delivered pull request event: fetch the
// event's diff URL, classify, and notify. Notification failure is logged and
// swallowed since the triage decision itself already succeeded.
func (s *Service) TriageWebhook(ctx context.Context, event *core.TriageEvent) (core.ReviewResult, error) {
	s.logger.Info("processing pull request", "pr", event.HTMLURL)

	diff, err := s.fetcher.FetchWebhookDiff(ctx, event.DiffURL)
	if err != nil || diff == "" {
		if err != nil {
			s.logger.Error("failed to fetch diff content", "pr", event.HTMLURL, "error", err)
		}
		return core.ReviewResult{}, core.ErrFetchFailed
	}

	result := s.classifier.Classify(ctx, diff)
	s.logger.Info("AI verdict", "verdict", result.Verdict, "comment", result.Comment)

	if err := s.notifier.Notify(ctx, result, event.HTMLURL); err != nil {
		s.logger.Warn("slack notification failed", "pr", event.HTMLURL, "verdict", result.Verdict, "error", err)
	}

	return result, nil
}

// Analyze runs the direct-analyze path for a pull request URL: parse, fetch
// via the authenticated API with the mirror as fallback, classify. The GitHub
// token is required here; unlike the webhook path there is no degraded mode.
// No notification is sent, the result goes back to the caller.
func (s *Service) Analyze(ctx context.Context, prURL string) (core.ReviewResult, error) {
	ref, err := core.ParsePullRequestURL(prURL)
	if err != nil {
		return core.ReviewResult{}, err
	}

	if s.cfg.GitHub.Token == "" {
		return core.ReviewResult{}, core.ErrMissingToken
	}

	diff, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		s.logger.Error("diff fetch exhausted all strategies", "pr", ref, "error", err)
		return core.ReviewResult{}, core.ErrFetchFailed
	}

	result := s.classifier.Classify(ctx, diff)
	s.logger.Info("AI verdict", "pr", ref, "verdict", result.Verdict)
	return result, nil
}
