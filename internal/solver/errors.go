package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/knowledge"
)

var (
	// ErrInvalidOpeningGuess means the caller's opening guess was rejected by the game.
	ErrInvalidOpeningGuess = errors.New("solver: invalid opening guess")
	// ErrFeedbackTimeout means the game did not answer a submission in time.
	ErrFeedbackTimeout = errors.New("solver: timed out waiting for feedback")
	// ErrExhaustedCandidates means no candidate is consistent with the accumulated knowledge.
	ErrExhaustedCandidates = errors.New("solver: candidate pool exhausted")
)

// SessionError reports where a session stopped.
type SessionError struct {
	Session string
	Row     int
	Word    string
	Err     error
}

func (e *SessionError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("session %s row %d: %v", e.Session, e.Row, e.Err)
	}
	return fmt.Sprintf("session %s row %d (%s): %v", e.Session, e.Row, e.Word, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// Retryable reports whether a fresh session might succeed where this one failed.
// Caller intent, constraint defects and cancellation are final.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrInvalidOpeningGuess),
		errors.Is(err, ErrExhaustedCandidates),
		errors.Is(err, knowledge.ErrContradictoryFeedback),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}
