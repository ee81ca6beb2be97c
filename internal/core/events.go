package core

import (
	"fmt"

	"github.com/google/go-github/v73/github"
)

// TriageEvent represents a simplified, internal view of a GitHub pull request
// webhook event. Only the fields the triage pipeline needs are carried over.
type TriageEvent struct {
	Action  string
	DiffURL string
	HTMLURL string
}

// EventFromPullRequest transforms a raw GitHub PullRequestEvent into the
// application's internal TriageEvent representation. It acts as an
// anti-corruption layer, ensuring the incoming webhook payload carries the
// URLs the pipeline depends on before any processing starts.
func EventFromPullRequest(event *github.PullRequestEvent) (*TriageEvent, error) {
	pr := event.GetPullRequest()
	if pr == nil {
		return nil, fmt.Errorf("pull request information is missing from the event")
	}

	diffURL := pr.GetDiffURL()
	htmlURL := pr.GetHTMLURL()
	if diffURL == "" || htmlURL == "" {
		return nil, fmt.Errorf("missing diff_url or html_url in payload")
	}

	return &TriageEvent{
		Action:  event.GetAction(),
		DiffURL: diffURL,
		HTMLURL: htmlURL,
	}, nil
}
