package core

import "errors"

var (
	// ErrInvalidURL indicates a string that does not match the GitHub
	// pull request URL format.
	ErrInvalidURL = errors.New("invalid GitHub pull request URL")

	// ErrMissingToken indicates that a GitHub token is required for the
	// requested operation but none is configured.
	ErrMissingToken = errors.New("GITHUB_TOKEN is not configured")

	// ErrFetchFailed indicates that every diff retrieval strategy was
	// exhausted without producing content.
	ErrFetchFailed = errors.New("failed to fetch pull request diff")
)

// Machine-readable error codes returned by the analyze API envelope.
const (
	CodeInvalidJSON   = "INVALID_JSON"
	CodeMissingURL    = "MISSING_URL"
	CodeInvalidURL    = "INVALID_URL"
	CodeMissingToken  = "MISSING_TOKEN"
	CodeFetchFailed   = "FETCH_FAILED"
	CodeAIFailed      = "AI_FAILED"
	CodeInternalError = "INTERNAL_ERROR"
)
