package knowledge

import "github.com/robalobadob/wordle/apps/go-solver/internal/feedback"

// Matches reports whether w is consistent with every constraint in s.
// The first violated predicate rejects the word.
func (s *State) Matches(w string) bool {
	if len(w) != feedback.WordLength {
		return false
	}
	for i := 0; i < feedback.WordLength; i++ {
		c := w[i]
		pos := s.Positions[i]
		if pos.Excluded.Has(c) {
			return false
		}
		if pos.Known() && c != pos.Correct {
			return false
		}
		if s.Absent.Has(c) {
			return false
		}
	}
	return s.Present.Minus(LettersOf(w)).Empty()
}

// Filter returns the words of pool consistent with s, preserving pool order.
// pool is not modified; the result is a fresh slice.
func Filter(pool []string, s *State) []string {
	out := make([]string, 0, len(pool))
	for _, w := range pool {
		if s.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}
