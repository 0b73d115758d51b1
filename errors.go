package semrag

import "errors"

// Sentinel errors for orchestrator error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrNotInitialized indicates Answer was called before Initialize
	// populated the concept graph and the retrieval index. The call is a
	// caller error and is not retried.
	ErrNotInitialized = errors.New("system not initialized")

	// ErrCompletionFailed indicates the completion backend call failed or
	// timed out. This is the only upstream failure that propagates to the
	// caller; retrieval failures degrade to a plain-chat answer instead.
	// The underlying error is wrapped for additional context.
	ErrCompletionFailed = errors.New("completion failed")

	// ErrNoCompleter indicates no completion backend was configured.
	ErrNoCompleter = errors.New("no completer configured")
)
