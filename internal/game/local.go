package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrRowMismatch is returned when a submission names a row other than the next one.
var ErrRowMismatch = errors.New("row out of order")

// Local is a concurrency-safe in-process game. It satisfies solver.Game.
type Local struct {
	mu sync.Mutex
	g  *Game
}

// NewLocal wraps g.
func NewLocal(g *Game) *Local { return &Local{g: g} }

// ID is the wrapped game's id.
func (l *Local) ID() string { return l.g.ID }

// Answer is the secret word.
func (l *Local) Answer() string { return l.g.Answer }

// Guess applies one guess under the lock.
func (l *Local) Guess(word string) (feedback.Feedback, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.g.ApplyGuess(word)
}

// Snapshot returns a copy of the game state.
func (l *Local) Snapshot() Game {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *l.g
	cp.Guesses = append([]string(nil), l.g.Guesses...)
	return cp
}

// Submit plays word on row. Words the game does not accept are reported as
// rejected, not as errors; the row is not consumed.
func (l *Local) Submit(ctx context.Context, word string, row int) (solver.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return solver.Outcome{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if want := len(l.g.Guesses) + 1; row != want {
		return solver.Outcome{}, fmt.Errorf("%w: got %d, want %d", ErrRowMismatch, row, want)
	}
	fb, _, err := l.g.ApplyGuess(word)
	switch {
	case errors.Is(err, ErrInvalidGuess), errors.Is(err, ErrNotInWordList):
		return solver.Outcome{Accepted: false, Feedback: feedback.Rejected(word)}, nil
	case err != nil:
		return solver.Outcome{}, err
	}
	return solver.Outcome{Accepted: true, Feedback: fb}, nil
}
