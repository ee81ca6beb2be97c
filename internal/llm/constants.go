package llm

// Only the head of the diff is forwarded to the model. Truncation policy,
// not a parse boundary.
const maxDiffChars = 4000

const (
	// explainPrompt asks for a free-text assessment of the diff (two-pass
	// protocol, first request).
	explainPrompt = "You are a senior software engineer acting as a code reviewer. " +
		"Analyze the provided code diff and answer: What is the issue here? " +
		"Respond in natural human language with a brief, clear explanation."

	// classifyPrompt reduces the explanation to a single verdict word
	// (two-pass protocol, second request).
	classifyPrompt = "Based on the issue description, classify the severity as either " +
		"'CRITICAL', 'NEEDS_REVIEW', or 'GOOD'. " +
		"Respond with only one word: CRITICAL, NEEDS_REVIEW, or GOOD."

	// structuredPrompt asks for the verdict and comment in one JSON object
	// (structured protocol).
	structuredPrompt = "You are a senior software engineer acting as a code reviewer. " +
		"Analyze the provided code diff for defects, security problems, and risky changes. " +
		"Respond with a single JSON object and nothing else, using exactly these keys: " +
		`"verdict" (one of "CRITICAL", "NEEDS_REVIEW", "GOOD") and ` +
		`"comment" (a brief, clear explanation of your assessment).`
)
