// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import "strings"

// Verdict is the canonical severity classification assigned to a pull request.
// It controls which notification channel receives the triage result.
type Verdict string

const (
	// VerdictCritical marks a change that most likely introduces a serious defect.
	VerdictCritical Verdict = "CRITICAL"
	// VerdictNeedsReview marks a change that requires human attention. It is the
	// universal fallback whenever classification is ambiguous or unavailable.
	VerdictNeedsReview Verdict = "NEEDS_REVIEW"
	// VerdictGood marks a change the model considers safe.
	VerdictGood Verdict = "GOOD"
)

// IsValid reports whether the verdict is one of the three canonical values.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictCritical, VerdictNeedsReview, VerdictGood:
		return true
	}
	return false
}

// NormalizeVerdict reduces an arbitrary model response to a canonical verdict.
// The input is trimmed and upper-cased; anything outside the canonical set
// becomes NEEDS_REVIEW so that human review remains the safety net.
func NormalizeVerdict(s string) Verdict {
	v := Verdict(strings.ToUpper(strings.TrimSpace(s)))
	if !v.IsValid() {
		return VerdictNeedsReview
	}
	return v
}

// ReviewResult is the outcome of classifying a single diff. Comment is always
// non-empty; when the model is unavailable or fails it carries an explanatory
// placeholder instead of the model's analysis.
type ReviewResult struct {
	Verdict Verdict `json:"verdict"`
	Comment string  `json:"comment"`
}

// UnavailableComment is the placeholder used when no model backend is configured.
const UnavailableComment = "AI analysis unavailable - manual review required"
