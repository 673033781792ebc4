package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

func mustParse(t *testing.T, word, pattern string) feedback.Feedback {
	t.Helper()
	fb, err := feedback.Parse(word, pattern)
	require.NoError(t, err)
	return fb
}

func TestUpdate_ClassifiesTiles(t *testing.T) {
	s := New()
	require.NoError(t, s.Update("arose", mustParse(t, "arose", "yg..g")))

	assert.Equal(t, byte('r'), s.Positions[1].Correct)
	assert.Equal(t, byte('e'), s.Positions[4].Correct)
	assert.True(t, s.Positions[0].Excluded.Has('a'))
	assert.Equal(t, "aer", s.Present.String())
	assert.Equal(t, "os", s.Absent.String())
}

func TestUpdate_DuplicateAbsentStaysLocal(t *testing.T) {
	// secret "abide", guess "speed": first e present, second e absent
	s := New()
	require.NoError(t, s.Update("speed", feedback.Score("abide", "speed")))

	assert.False(t, s.Absent.Has('e'), "e must not be globally absent")
	assert.True(t, s.Present.Has('e'))
	assert.True(t, s.Positions[2].Excluded.Has('e'))
	assert.True(t, s.Positions[3].Excluded.Has('e'))
	assert.True(t, s.Matches("abide"))
}

func TestUpdate_DuplicateAbsentWithCorrectElsewhere(t *testing.T) {
	s := New()
	require.NoError(t, s.Update("eerie", feedback.Score("crane", "eerie")))

	assert.False(t, s.Absent.Has('e'))
	assert.Equal(t, byte('e'), s.Positions[4].Correct)
	assert.True(t, s.Positions[0].Excluded.Has('e'))
	assert.True(t, s.Positions[1].Excluded.Has('e'))
	assert.True(t, s.Absent.Has('i'))
}

func TestUpdate_AbsentAndPresentNeverOverlap(t *testing.T) {
	s := New()
	for _, g := range []string{"speed", "eerie", "geese", "level"} {
		require.NoError(t, s.Update(g, feedback.Score("elder", g)), g)
	}
	assert.True(t, s.Absent.Intersect(s.Present).Empty())
	assert.True(t, s.Absent.Intersect(s.CorrectLetters()).Empty())
}

func TestUpdate_RejectsPendingFeedback(t *testing.T) {
	s := New()
	err := s.Update("zzzzz", feedback.Rejected("zzzzz"))
	assert.ErrorIs(t, err, ErrInvalidFeedback)
	assert.Equal(t, State{}, *s)
}

func TestUpdate_RejectsMismatchedWord(t *testing.T) {
	s := New()
	err := s.Update("crane", feedback.Score("crane", "trace"))
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestUpdate_ContradictionLeavesStateUntouched(t *testing.T) {
	s := New()
	require.NoError(t, s.Update("arose", mustParse(t, "arose", "yg..g")))
	before := *s

	err := s.Update("sword", mustParse(t, "sword", "y...."))
	assert.ErrorIs(t, err, ErrContradictoryFeedback)
	assert.Equal(t, before, *s)

	err = s.Update("tread", mustParse(t, "tread", ".y..."))
	assert.ErrorIs(t, err, ErrContradictoryFeedback, "r is confirmed at slot 2")
}

func TestIsWinningWord(t *testing.T) {
	s := New()
	assert.False(t, s.IsWinningWord("crane"))

	require.NoError(t, s.Update("trace", feedback.Score("crane", "trace")))
	assert.False(t, s.IsWinningWord("crane"), "not all slots known")

	require.NoError(t, s.Update("crane", feedback.Score("crane", "crane")))
	assert.True(t, s.IsWinningWord("crane"))
	assert.False(t, s.IsWinningWord("trace"))

	sol, ok := s.Solution()
	assert.True(t, ok)
	assert.Equal(t, "crane", sol)
	assert.Equal(t, "crane", s.Pattern())
}

func TestLetters(t *testing.T) {
	l := LettersOf("hello")
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, "ehlo", l.String())
	assert.True(t, l.Has('h'))
	assert.False(t, l.Remove('h').Has('h'))
	assert.False(t, l.Has('A'))
	assert.True(t, Letters(0).Empty())
}
