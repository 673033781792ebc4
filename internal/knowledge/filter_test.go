package knowledge

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

var sampleWords = []string{
	"crane", "trace", "arose", "slate", "plate", "abide", "speed", "eerie", "elder", "geese",
	"level", "stare", "tears", "rates", "react", "caste", "cater", "crate", "train", "brain",
	"grain", "drain", "chair", "choir", "civic", "madam", "kayak", "llama", "mamma", "sassy",
	"fuzzy", "jazzy", "pizza", "dizzy", "tipsy", "mossy", "bossy", "lobby", "hobby", "puppy",
	"sheep", "sleep", "steep", "sweep", "creep", "cheer", "sheer", "steer", "queer", "queen",
	"about", "above", "abuse", "actor", "acute", "adopt", "adult", "after", "again", "agent",
}

func TestFilter_ScenarioA(t *testing.T) {
	pool := []string{"crane", "trace", "arose", "slate", "plate"}
	s := New()
	require.NoError(t, s.Update("arose", feedback.Score("crane", "arose")))

	got := Filter(pool, s)
	assert.ElementsMatch(t, []string{"crane", "trace"}, got)
	for _, w := range got {
		assert.NotContains(t, w, "o")
		assert.NotContains(t, w, "s")
	}
}

func TestFilter_DoesNotMutatePool(t *testing.T) {
	pool := []string{"crane", "trace", "arose"}
	s := New()
	require.NoError(t, s.Update("arose", feedback.Score("crane", "arose")))

	_ = Filter(pool, s)
	assert.Equal(t, []string{"crane", "trace", "arose"}, pool)
}

func TestFilter_Idempotent(t *testing.T) {
	s := New()
	require.NoError(t, s.Update("stare", feedback.Score("cater", "stare")))

	once := Filter(sampleWords, s)
	twice := Filter(once, s)
	assert.Equal(t, once, twice)
}

func TestFilter_Monotonic(t *testing.T) {
	s := New()
	empty := Filter(sampleWords, s)
	assert.Equal(t, sampleWords, empty, "empty state keeps every word")

	require.NoError(t, s.Update("slate", feedback.Score("crate", "slate")))
	first := Filter(sampleWords, s)
	assert.LessOrEqual(t, len(first), len(sampleWords))

	require.NoError(t, s.Update("train", feedback.Score("crate", "train")))
	second := Filter(sampleWords, s)
	assert.LessOrEqual(t, len(second), len(first))
	assert.Subset(t, first, second)
}

func TestFilter_PresentLetterRequired(t *testing.T) {
	s := New()
	require.NoError(t, s.Update("queen", feedback.Score("about", "queen")))
	for _, w := range Filter(sampleWords, s) {
		assert.Contains(t, w, "u")
	}
}

// Soundness: the secret word survives every filter when feedback comes from two-pass scoring.
func TestFilter_NeverPrunesSecret(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 500; trial++ {
		secret := sampleWords[rng.IntN(len(sampleWords))]
		s := New()
		pool := sampleWords
		for row := 0; row < 6; row++ {
			guess := sampleWords[rng.IntN(len(sampleWords))]
			require.NoError(t, s.Update(guess, feedback.Score(secret, guess)), "%s vs %s", guess, secret)
			pool = Filter(pool, s)
			require.Contains(t, pool, secret, "secret %q pruned after %q", secret, guess)
		}
	}
}

func TestMatches_WrongLength(t *testing.T) {
	assert.False(t, New().Matches("four"))
	assert.False(t, New().Matches("sixsix"))
}
