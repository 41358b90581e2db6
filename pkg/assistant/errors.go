package assistant

import "errors"

var (
	// ErrEmptySegment marks a rejected empty or whitespace-only segment.
	// Callers treat it as a no-op, not a failure.
	ErrEmptySegment = errors.New("empty transcript segment")

	// ErrGenerationFailed wraps summarization or question-completion
	// failures. The session keeps accepting segments afterwards.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrSessionNotListening is returned when a segment arrives while the
	// session is idle.
	ErrSessionNotListening = errors.New("session is not listening")
)
