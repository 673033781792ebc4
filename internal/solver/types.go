// internal/solver/types.go
//
// Types shared by the solver loop and its collaborators.
// Defines:
//   - Game:      the external game a guess is submitted to.
//   - WordStore: the durable dictionary (initial pool, permanent removals).
//   - Presenter: write-only consumer of progress and results.
//   - GuessRecord / SessionResult: the session log and its terminal value.

package solver

import (
	"context"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// MaxRows is the number of accepted guesses a session may spend.
const MaxRows = 6

// Outcome is the game's answer to one submission.
// Feedback is meaningless (all Pending) when Accepted is false.
type Outcome struct {
	Accepted bool
	Feedback feedback.Feedback
}

// Game submits a guess for a row and blocks until the game responds.
type Game interface {
	Submit(ctx context.Context, word string, row int) (Outcome, error)
}

// WordStore owns the dictionary shared across sessions.
type WordStore interface {
	// Load returns word -> weight for every word still in the dictionary.
	Load(ctx context.Context) (map[string]int, error)
	// Remove permanently drops word from future sessions.
	Remove(ctx context.Context, word string) error
}

// Presenter receives the session log. The solver never reads from it.
type Presenter interface {
	Record(rec GuessRecord)
	Finish(res SessionResult) error
}

// GuessRecord is one accepted guess. Immutable once created.
type GuessRecord struct {
	Row      int               `json:"row"`
	Word     string            `json:"word"`
	Feedback feedback.Feedback `json:"letters"`
	PoolSize int               `json:"poolSize"` // candidates left after this guess
}

// SessionResult is the terminal value of a session.
type SessionResult struct {
	ID         string        `json:"id"`
	Solved     bool          `json:"solved"`
	Solution   string        `json:"solution,omitempty"`
	Rows       []GuessRecord `json:"rows"`
	Rejected   []string      `json:"rejected,omitempty"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
}

// nopPresenter discards everything.
type nopPresenter struct{}

func (nopPresenter) Record(GuessRecord)         {}
func (nopPresenter) Finish(SessionResult) error { return nil }
