// internal/knowledge/state.go
//
// Accumulated knowledge about the secret word.
// Responsibilities:
//   - One PositionConstraint per letter slot (confirmed letter, excluded letters).
//   - Global absent/present letter sets.
//   - Fold the feedback of each accepted guess into the constraints (Update).
//   - Decide whether a word is the confirmed solution (IsWinningWord).
//
// Duplicate letters:
//   An Absent tile whose letter is Correct or Present elsewhere in the same guess
//   only means "not here"; it is recorded as a position exclusion and never promoted
//   to the global absent set. Under two-pass scoring this keeps the secret word in
//   every filtered pool.

package knowledge

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

var (
	// ErrInvalidFeedback is returned when feedback is pending or does not match the word.
	ErrInvalidFeedback = errors.New("knowledge: invalid feedback")
	// ErrContradictoryFeedback is returned when feedback conflicts with earlier knowledge.
	ErrContradictoryFeedback = errors.New("knowledge: contradictory feedback")
)

// PositionConstraint is what is known about one letter slot.
type PositionConstraint struct {
	Correct  byte    `json:"-"` // 0 until confirmed
	Excluded Letters `json:"excluded"`
}

// Known reports whether the slot's letter has been confirmed.
func (p PositionConstraint) Known() bool { return p.Correct != 0 }

// State is the full knowledge accumulated during one session.
// The zero value is the empty state.
type State struct {
	Positions [feedback.WordLength]PositionConstraint `json:"positions"`
	Absent    Letters                                 `json:"absent"`
	Present   Letters                                 `json:"present"`
}

// New returns an empty State.
func New() *State { return &State{} }

// Update folds one accepted guess into the state.
//
//   - Correct → fix the slot's letter; the letter is present.
//   - Present → the letter is present; excluded at this slot.
//   - Absent  → excluded at this slot if the letter is Correct/Present elsewhere in
//     the guess (or already known present); otherwise absent from the word.
//
// The state is left untouched when an error is returned.
func (s *State) Update(word string, fb feedback.Feedback) error {
	if len(word) != feedback.WordLength || fb.Word() != word {
		return fmt.Errorf("%w: feedback for %q does not match guess %q", ErrInvalidFeedback, fb.Word(), word)
	}
	if fb.IsPending() {
		return fmt.Errorf("%w: pending tiles for %q", ErrInvalidFeedback, word)
	}

	var positive Letters
	for i := 0; i < feedback.WordLength; i++ {
		if st := fb[i].State; st == feedback.Correct || st == feedback.Present {
			positive = positive.Add(word[i])
		}
	}
	if err := s.check(word, fb, positive); err != nil {
		return err
	}

	for i := 0; i < feedback.WordLength; i++ {
		c := word[i]
		pos := &s.Positions[i]
		switch fb[i].State {
		case feedback.Correct:
			pos.Correct = c
			s.Present = s.Present.Add(c)
		case feedback.Present:
			s.Present = s.Present.Add(c)
			pos.Excluded = pos.Excluded.Add(c)
		case feedback.Absent:
			if positive.Has(c) || s.Present.Has(c) {
				pos.Excluded = pos.Excluded.Add(c)
			} else {
				s.Absent = s.Absent.Add(c)
			}
		}
	}
	return nil
}

// check validates fb against the state without mutating it.
func (s *State) check(word string, fb feedback.Feedback, positive Letters) error {
	for i := 0; i < feedback.WordLength; i++ {
		c := word[i]
		pos := s.Positions[i]
		switch fb[i].State {
		case feedback.Correct:
			if pos.Known() && pos.Correct != c {
				return fmt.Errorf("%w: slot %d is %q, got %q", ErrContradictoryFeedback, i+1, pos.Correct, c)
			}
			if pos.Excluded.Has(c) {
				return fmt.Errorf("%w: %q was excluded at slot %d", ErrContradictoryFeedback, c, i+1)
			}
			if s.Absent.Has(c) {
				return fmt.Errorf("%w: %q was absent", ErrContradictoryFeedback, c)
			}
		case feedback.Present:
			if pos.Correct == c {
				return fmt.Errorf("%w: %q is confirmed at slot %d", ErrContradictoryFeedback, c, i+1)
			}
			if s.Absent.Has(c) {
				return fmt.Errorf("%w: %q was absent", ErrContradictoryFeedback, c)
			}
		case feedback.Absent:
			if pos.Correct == c {
				return fmt.Errorf("%w: %q is confirmed at slot %d", ErrContradictoryFeedback, c, i+1)
			}
		}
	}
	return nil
}

// IsWinningWord reports whether every slot is confirmed and the confirmed letters spell word.
func (s *State) IsWinningWord(word string) bool {
	sol, ok := s.Solution()
	return ok && sol == word
}

// Solution returns the confirmed letters once all slots are known.
func (s *State) Solution() (string, bool) {
	b := make([]byte, feedback.WordLength)
	for i, p := range s.Positions {
		if !p.Known() {
			return "", false
		}
		b[i] = p.Correct
	}
	return string(b), true
}

// CorrectLetters returns the set of letters confirmed in some slot.
func (s *State) CorrectLetters() Letters {
	var l Letters
	for _, p := range s.Positions {
		if p.Known() {
			l = l.Add(p.Correct)
		}
	}
	return l
}

// Pattern renders confirmed slots as letters and unknown ones as '_', e.g. "_r__e".
func (s *State) Pattern() string {
	b := make([]byte, feedback.WordLength)
	for i, p := range s.Positions {
		if p.Known() {
			b[i] = p.Correct
		} else {
			b[i] = '_'
		}
	}
	return string(b)
}
