package core

import (
	"fmt"
	"regexp"
)

// Trailing path segments such as /files or /commits/abc are accepted and ignored.
var prURLRegex = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/pull/(\d+)(?:/.*)?$`)

// PullRequestRef identifies a pull request by its owner, repository, and
// number. Number stays a string: it is only ever interpolated into API URLs.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number string
}

// ParsePullRequestURL extracts a PullRequestRef from a GitHub pull request URL.
// Supported format: https://github.com/{owner}/{repo}/pull/{number}[/...]
// A non-matching string yields ErrInvalidURL and no partial result.
func ParsePullRequestURL(url string) (*PullRequestRef, error) {
	matches := prURLRegex.FindStringSubmatch(url)
	if len(matches) != 4 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}

	return &PullRequestRef{
		Owner:  matches[1],
		Repo:   matches[2],
		Number: matches[3],
	}, nil
}

// String returns the owner/repo#number form used in logs.
func (r *PullRequestRef) String() string {
	return fmt.Sprintf("%s/%s#%s", r.Owner, r.Repo, r.Number)
}
