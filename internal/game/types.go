// internal/game/types.go
//
// Core type definitions for the local Wordle game.
// Defines:
//   - Mark: per-letter result of a guess on the HTTP wire (hit/present/miss).
//   - Game: state for a single in-progress or finished game.
//   - Conversions between Marks and feedback.Feedback.

package game

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "miss":    letter does not exist in the answer at all.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// Game holds the state of a single Wordle game.
type Game struct {
	ID       string   // Unique game identifier (random hex string).
	Answer   string   // The solution word (always lowercase).
	Rows     int      // Maximum number of guesses allowed (6).
	Cols     int      // Number of letters per word (5).
	Guesses  []string // Guesses made so far (lowercased).
	Finished bool     // True once the game is over (won or lost).
	Won      bool     // True if the game was finished with a win.

	allowed *words.Dictionary
}

// State is the coarse wire state: "playing", "won" or "lost".
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Marks converts scored feedback to wire marks.
func Marks(fb feedback.Feedback) []Mark {
	out := make([]Mark, len(fb))
	for i, l := range fb {
		switch l.State {
		case feedback.Correct:
			out[i] = MarkHit
		case feedback.Present:
			out[i] = MarkPresent
		default:
			out[i] = MarkMiss
		}
	}
	return out
}

// FromMarks rebuilds feedback for word from wire marks.
func FromMarks(word string, marks []Mark) (feedback.Feedback, error) {
	if len(marks) != feedback.WordLength {
		return feedback.Feedback{}, fmt.Errorf("got %d marks, want %d", len(marks), feedback.WordLength)
	}
	var states [feedback.WordLength]feedback.State
	for i, m := range marks {
		st, err := feedback.ParseState(string(m))
		if err != nil {
			return feedback.Feedback{}, err
		}
		states[i] = st
	}
	return feedback.New(word, states)
}
