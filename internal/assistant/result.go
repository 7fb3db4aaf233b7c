package assistant

import "fmt"

// FailureKind discriminates the failure paths of the pipeline. Callers
// branch on the kind instead of inspecting message text.
type FailureKind int

const (
	// FailureNone marks a successful result.
	FailureNone FailureKind = iota
	// FailureLLM is a transport or API failure of the completion call.
	FailureLLM
	// FailureExtraction means no parseable JSON was found in the model reply.
	FailureExtraction
	// FailureValidation means a required slot was missing or blank.
	FailureValidation
	// FailureREST is a non-2xx reply from the Jira API.
	FailureREST
	// FailureResolution means a best-effort lookup (board, sprint, user,
	// issue) produced no match.
	FailureResolution
)

// Result is the outcome of one slot filler: either a success carrying the
// user-facing summary, or a failure carrying its kind and message. Every
// failure is terminal for the current utterance; nothing is retried.
type Result struct {
	Kind    FailureKind
	Message string
}

// Success returns a successful result with the given user-facing message.
func Success(message string) Result {
	return Result{Kind: FailureNone, Message: message}
}

// Failure returns a failed result of the given kind.
func Failure(kind FailureKind, message string) Result {
	return Result{Kind: kind, Message: message}
}

// Failuref returns a failed result with a formatted message.
func Failuref(kind FailureKind, format string, args ...interface{}) Result {
	return Result{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Failed reports whether the result is a failure.
func (r Result) Failed() bool {
	return r.Kind != FailureNone
}
