// Package github retrieves pull request diffs from GitHub's API and its
// public patch-diff mirror.
package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/sevigo/pr-triage/internal/config"
	"github.com/sevigo/pr-triage/internal/core"
)

const (
	diffMediaType = "application/vnd.github.v3.diff"
	userAgent     = "GitHub-PR-Triaging-Agent"

	maxAttempts      = 3
	maxRateLimitWait = 60 * time.Second

	apiTimeout     = 10 * time.Second
	mirrorTimeout  = 10 * time.Second
	webhookTimeout = 30 * time.Second
)

// attemptOutcome classifies a single primary-fetch attempt, so the boundary
// between "retry" and "give up" is an explicit state transition instead of
// unwound error control flow.
type attemptOutcome int

const (
	attemptSuccess attemptOutcome = iota
	attemptRetry
	attemptFatal
)

// Fetcher retrieves raw unified diffs for pull requests. The primary strategy
// talks to the GitHub API with a bearer token and bounded retries; the
// fallback hits the unauthenticated patch-diff mirror; a third strategy
// fetches webhook-delivered diff URLs directly.
type Fetcher struct {
	token      string
	apiBase    string
	mirrorBase string

	apiClient     *http.Client
	mirrorClient  *http.Client
	webhookClient *http.Client

	// Injectable for tests; backoff sleeps block only the calling goroutine.
	sleep func(time.Duration)
	now   func() time.Time

	logger *slog.Logger
}

// NewFetcher creates a Fetcher from the GitHub section of the configuration.
// When a token is configured the primary client sends it as a bearer token on
// every request via an oauth2 transport.
func NewFetcher(cfg *config.Config, logger *slog.Logger) *Fetcher {
	apiClient := &http.Client{Timeout: apiTimeout}
	if cfg.GitHub.Token != "" {
		apiClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHub.Token}),
		}
	}

	return &Fetcher{
		token:         cfg.GitHub.Token,
		apiBase:       cfg.GitHub.APIBaseURL,
		mirrorBase:    cfg.GitHub.MirrorBaseURL,
		apiClient:     apiClient,
		mirrorClient:  &http.Client{Timeout: mirrorTimeout},
		webhookClient: &http.Client{Timeout: webhookTimeout},
		sleep:         time.Sleep,
		now:           time.Now,
		logger:        logger,
	}
}

// Fetch retrieves the diff for a pull request, trying the authenticated API
// first and the patch-diff mirror second. When both strategies come up empty
// it returns core.ErrFetchFailed.
func (f *Fetcher) Fetch(ctx context.Context, ref *core.PullRequestRef) (string, error) {
	diff, err := f.FetchDiff(ctx, ref)
	if err == nil && diff != "" {
		return diff, nil
	}
	if err != nil {
		f.logger.Warn("primary diff fetch failed, trying fallback", "pr", ref, "error", err)
	}

	diff, err = f.FetchFallback(ctx, ref)
	if err != nil {
		f.logger.Warn("fallback diff fetch failed", "pr", ref, "error", err)
	}
	if err != nil || diff == "" {
		return "", core.ErrFetchFailed
	}
	return diff, nil
}

// FetchDiff retrieves the diff through the GitHub API with up to three
// attempts. Rate limiting (429) waits for the advertised reset, capped at 60
// seconds; server errors and transport failures back off exponentially
// (1s, 2s, 4s); any other non-2xx status aborts immediately.
func (f *Fetcher) FetchDiff(ctx context.Context, ref *core.PullRequestRef) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls/%s", f.apiBase, ref.Owner, ref.Repo, ref.Number)

	var lastErr error
	for attempt := range maxAttempts {
		body, outcome, err := f.attemptDiff(ctx, url, attempt)
		switch outcome {
		case attemptSuccess:
			return body, nil
		case attemptFatal:
			return "", err
		case attemptRetry:
			lastErr = err
		}
	}
	return "", lastErr
}

// attemptDiff performs one GET against the API and classifies the outcome.
func (f *Fetcher) attemptDiff(ctx context.Context, url string, attempt int) (string, attemptOutcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", attemptFatal, fmt.Errorf("building diff request: %w", err)
	}
	req.Header.Set("Accept", diffMediaType)
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.apiClient.Do(req)
	if err != nil {
		if attempt < maxAttempts-1 {
			f.sleep(backoff(attempt))
		}
		return "", attemptRetry, fmt.Errorf("diff request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		wait := f.rateLimitWait(resp.Header.Get("X-RateLimit-Reset"))
		f.logger.Warn("rate limited by GitHub API", "wait", wait)
		if wait > 0 {
			f.sleep(wait)
		}
		return "", attemptRetry, fmt.Errorf("rate limited: HTTP %d", resp.StatusCode)

	case resp.StatusCode >= http.StatusInternalServerError:
		f.sleep(backoff(attempt))
		return "", attemptRetry, fmt.Errorf("server error fetching diff: HTTP %d", resp.StatusCode)

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", attemptFatal, fmt.Errorf("unexpected status fetching diff: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if attempt < maxAttempts-1 {
			f.sleep(backoff(attempt))
		}
		return "", attemptRetry, fmt.Errorf("reading diff body: %w", err)
	}
	return string(body), attemptSuccess, nil
}

// FetchFallback retrieves the diff from the unauthenticated patch-diff
// mirror. A single attempt, no retries; callers treat any error as the diff
// being unavailable through this source.
func (f *Fetcher) FetchFallback(ctx context.Context, ref *core.PullRequestRef) (string, error) {
	url := fmt.Sprintf("%s/raw/%s/%s/pull/%s.diff", f.mirrorBase, ref.Owner, ref.Repo, ref.Number)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building fallback request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.mirrorClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fallback diff fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fallback diff fetch failed: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading fallback body: %w", err)
	}
	return string(body), nil
}

// FetchWebhookDiff retrieves a webhook-delivered diff URL with a single GET.
// The token, when configured, is sent in the legacy "token" scheme this
// endpoint accepts. Any failure means the diff is unavailable.
func (f *Fetcher) FetchWebhookDiff(ctx context.Context, diffURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, diffURL, nil)
	if err != nil {
		return "", fmt.Errorf("building webhook diff request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if f.token != "" {
		req.Header.Set("Authorization", "token "+f.token)
	}

	resp, err := f.webhookClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("webhook diff fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("webhook diff fetch failed: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading webhook diff body: %w", err)
	}
	return string(body), nil
}

// backoff returns the exponential delay for the given zero-based attempt.
func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

// rateLimitWait converts the X-RateLimit-Reset header into a wait duration,
// capped at maxRateLimitWait. A missing or malformed header yields zero.
func (f *Fetcher) rateLimitWait(resetHeader string) time.Duration {
	reset, err := strconv.ParseInt(resetHeader, 10, 64)
	if err != nil {
		return 0
	}
	wait := time.Duration(reset-f.now().Unix()+1) * time.Second
	if wait > maxRateLimitWait {
		wait = maxRateLimitWait
	}
	if wait < 0 {
		wait = 0
	}
	return wait
}
