// internal/selector/selector.go
//
// Next-guess selection by letter coverage.
// Responsibilities:
//   - Short-circuit tiny pools (one word: return it; two words: coin flip).
//   - Collect the still-informative letters of the pool (minus confirmed letters).
//   - Scan the full dictionary for probe words covering the most informative letters,
//     stepping the target score down from 5 to 0, and pick uniformly among the best.
//
// Notes:
//   - Probe words need not be possible answers; they only need distinct letters and
//     must not place a letter where it is already excluded.
//   - The random source is injected so tests and replays are deterministic.

package selector

import (
	"errors"
	"math/rand/v2"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/knowledge"
)

// ErrEmptyDictionary is returned when there is nothing left to guess.
var ErrEmptyDictionary = errors.New("selector: no words to choose from")

// Selector picks guesses. It is not safe for concurrent use; give each session its own.
type Selector struct {
	rng *rand.Rand
}

// New returns a Selector drawing from rng. A nil rng uses a randomly seeded PCG.
func New(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rng: rng}
}

// Seeded returns a Selector whose choices are fully determined by seed.
func Seeded(seed uint64) *Selector {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Select returns the next guess for pool, probing with words from dict.
func (s *Selector) Select(pool, dict []string, st *knowledge.State) (string, error) {
	switch len(pool) {
	case 0:
		if len(dict) == 0 {
			return "", ErrEmptyDictionary
		}
	case 1:
		return pool[0], nil
	case 2:
		return pool[s.rng.IntN(2)], nil
	}

	available := AvailableLetters(pool, st)
	if len(pool) > 0 && available.Empty() {
		return pool[s.rng.IntN(len(pool))], nil
	}

	byScore := bucket(dict, st, available)
	for k := feedback.WordLength; k >= 0; k-- {
		if candidates := byScore[k]; len(candidates) > 0 {
			return candidates[s.rng.IntN(len(candidates))], nil
		}
	}

	// Nothing in dict passes the shape checks; fall back to a possible answer.
	if len(pool) > 0 {
		return pool[s.rng.IntN(len(pool))], nil
	}
	return "", ErrEmptyDictionary
}

// AvailableLetters is the set of letters across pool that are not yet confirmed in any slot.
func AvailableLetters(pool []string, st *knowledge.State) knowledge.Letters {
	var l knowledge.Letters
	for _, w := range pool {
		l = l.Union(knowledge.LettersOf(w))
	}
	return l.Minus(st.CorrectLetters())
}

// bucket groups the valid probes of dict by score, keeping dict order inside each group.
func bucket(dict []string, st *knowledge.State, available knowledge.Letters) [feedback.WordLength + 1][]string {
	var out [feedback.WordLength + 1][]string
	for _, w := range dict {
		if k := Score(w, st, available); k >= 0 {
			out[k] = append(out[k], w)
		}
	}
	return out
}

// Score counts the available letters covered by w, or -1 when w is not a valid probe
// (wrong length, repeated letter or a letter in an excluded slot).
func Score(w string, st *knowledge.State, available knowledge.Letters) int {
	if len(w) != feedback.WordLength {
		return -1
	}
	var seen knowledge.Letters
	for i := 0; i < feedback.WordLength; i++ {
		c := w[i]
		if seen.Has(c) || st.Positions[i].Excluded.Has(c) {
			return -1
		}
		seen = seen.Add(c)
	}
	return seen.Intersect(available).Len()
}
