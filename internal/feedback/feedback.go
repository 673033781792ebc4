// internal/feedback/feedback.go
//
// Per-letter verdicts for a submitted guess.
// Defines:
//   - State: Correct / Present / Absent, or Pending when the game rejected the guess.
//   - Feedback: the ordered (letter, state) pairs for one five-letter guess.
//   - Score: the classic two-pass Wordle evaluation against a known answer.
//
// Notes:
//   - Words are lowercase ASCII a–z; callers validate before scoring.
//   - Pattern strings use one character per tile: 'g' correct, 'y' present, '.' absent, '?' pending.

package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// WordLength is the number of letters in every guess and answer.
const WordLength = 5

// State is the verdict for a single tile.
type State uint8

const (
	Pending State = iota // guess rejected, no information
	Absent
	Present
	Correct
)

// String returns the tile state using the game's data-state vocabulary.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	default:
		return "tbd"
	}
}

// MarshalText lets State travel as a JSON string.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts both the data-state names and the hit/present/miss marks
// served by the Wordle API.
func (s *State) UnmarshalText(b []byte) error {
	st, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseState maps a textual tile verdict to a State.
func ParseState(v string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "correct", "hit":
		return Correct, nil
	case "present":
		return Present, nil
	case "absent", "miss":
		return Absent, nil
	case "tbd", "pending", "":
		return Pending, nil
	}
	return Pending, fmt.Errorf("feedback: unknown tile state %q", v)
}

// Letter is one (letter, state) pair.
type Letter struct {
	Letter byte
	State  State
}

type letterJSON struct {
	Letter string `json:"letter"`
	State  State  `json:"state"`
}

// MarshalJSON encodes the pair as {"letter":"a","state":"present"}.
func (l Letter) MarshalJSON() ([]byte, error) {
	return json.Marshal(letterJSON{Letter: string(l.Letter), State: l.State})
}

// UnmarshalJSON reverses MarshalJSON.
func (l *Letter) UnmarshalJSON(b []byte) error {
	var v letterJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if len(v.Letter) != 1 {
		return fmt.Errorf("feedback: letter %q must be one character", v.Letter)
	}
	l.Letter, l.State = v.Letter[0], v.State
	return nil
}

// Feedback is the ordered tile sequence for one guess.
type Feedback [WordLength]Letter

// New pairs the letters of word with the given states.
func New(word string, states [WordLength]State) (Feedback, error) {
	var fb Feedback
	if len(word) != WordLength {
		return fb, fmt.Errorf("feedback: word %q must be %d letters", word, WordLength)
	}
	for i := 0; i < WordLength; i++ {
		fb[i] = Letter{Letter: word[i], State: states[i]}
	}
	return fb, nil
}

// Rejected returns all-Pending feedback for word.
func Rejected(word string) Feedback {
	var fb Feedback
	for i := 0; i < WordLength && i < len(word); i++ {
		fb[i] = Letter{Letter: word[i], State: Pending}
	}
	return fb
}

// Word reassembles the guessed word.
func (f Feedback) Word() string {
	b := make([]byte, WordLength)
	for i, l := range f {
		b[i] = l.Letter
	}
	return string(b)
}

// Solved reports whether every tile is Correct.
func (f Feedback) Solved() bool {
	for _, l := range f {
		if l.State != Correct {
			return false
		}
	}
	return true
}

// IsPending reports whether any tile carries no information.
func (f Feedback) IsPending() bool {
	for _, l := range f {
		if l.State == Pending {
			return true
		}
	}
	return false
}

// Pattern encodes the states as a compact string such as "gy..g".
func (f Feedback) Pattern() string {
	var sb strings.Builder
	for _, l := range f {
		switch l.State {
		case Correct:
			sb.WriteByte('g')
		case Present:
			sb.WriteByte('y')
		case Absent:
			sb.WriteByte('.')
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// ErrBadPattern is returned by Parse for malformed patterns.
var ErrBadPattern = errors.New("feedback: malformed pattern")

// Parse rebuilds Feedback from a word and a Pattern string.
func Parse(word, pattern string) (Feedback, error) {
	var states [WordLength]State
	if len(pattern) != WordLength {
		return Feedback{}, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}
	for i := 0; i < WordLength; i++ {
		switch pattern[i] {
		case 'g', 'G':
			states[i] = Correct
		case 'y', 'Y':
			states[i] = Present
		case '.', 'b', 'B', '-':
			states[i] = Absent
		case '?':
			states[i] = Pending
		default:
			return Feedback{}, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
	}
	return New(word, states)
}

// Score implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non-correct) answer letters.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that letter,
//     mark Present and decrement the count; otherwise mark Absent.
//
// Repeated letters resolve left to right, bounded by their count in the answer.
func Score(answer, guess string) Feedback {
	var fb Feedback
	var counts [26]int

	for i := 0; i < WordLength; i++ {
		fb[i].Letter = guess[i]
		if guess[i] == answer[i] {
			fb[i].State = Correct
		} else {
			counts[idx(answer[i])]++
		}
	}

	for i := 0; i < WordLength; i++ {
		if fb[i].State == Correct {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			fb[i].State = Present
			counts[j]--
		} else {
			fb[i].State = Absent
		}
	}
	return fb
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c) - 'a' }
