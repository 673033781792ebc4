package feedback

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_ExactAndPresent(t *testing.T) {
	fb := Score("crane", "arose")
	assert.Equal(t, "arose", fb.Word())
	assert.Equal(t, "yg..g", fb.Pattern())
}

func TestScore_RepeatedGuessLetterBoundedByAnswer(t *testing.T) {
	// one 'e' in the answer: only the first non-correct 'e' is present
	fb := Score("abide", "speed")
	assert.Equal(t, "..y.y", fb.Pattern())

	// correct occurrence consumes the count before presents are assigned
	fb = Score("crane", "eerie")
	assert.Equal(t, Absent, fb[0].State)
	assert.Equal(t, Absent, fb[1].State)
	assert.Equal(t, Present, fb[2].State)
	assert.Equal(t, Absent, fb[3].State)
	assert.Equal(t, Correct, fb[4].State)
}

func TestScore_Solved(t *testing.T) {
	fb := Score("plate", "plate")
	assert.True(t, fb.Solved())
	assert.False(t, Score("plate", "slate").Solved())
}

func TestRejected_IsPending(t *testing.T) {
	fb := Rejected("zzzzz")
	assert.True(t, fb.IsPending())
	assert.Equal(t, "?????", fb.Pattern())
	assert.Equal(t, "zzzzz", fb.Word())
}

func TestParse_RoundTripsPattern(t *testing.T) {
	fb, err := Parse("trace", "gy..g")
	require.NoError(t, err)
	assert.Equal(t, "gy..g", fb.Pattern())
	assert.Equal(t, Present, fb[1].State)

	_, err = Parse("trace", "gyx.g")
	assert.ErrorIs(t, err, ErrBadPattern)
	_, err = Parse("trace", "gy")
	assert.ErrorIs(t, err, ErrBadPattern)
}

func TestNew_RejectsWrongLength(t *testing.T) {
	_, err := New("four", [WordLength]State{})
	assert.Error(t, err)
}

func TestParseState_AcceptsApiMarks(t *testing.T) {
	for in, want := range map[string]State{
		"hit": Correct, "correct": Correct, "present": Present,
		"miss": Absent, "absent": Absent, "tbd": Pending,
	} {
		got, err := ParseState(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseState("purple")
	assert.Error(t, err)
}

func TestFeedback_JSON(t *testing.T) {
	fb := Score("crane", "arose")
	b, err := json.Marshal(fb)
	require.NoError(t, err)
	assert.Contains(t, string(b), `{"letter":"a","state":"present"}`)

	var back Feedback
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, fb, back)
}

func TestState_JSON(t *testing.T) {
	b, err := json.Marshal([]State{Correct, Present, Absent})
	require.NoError(t, err)
	assert.JSONEq(t, `["correct","present","absent"]`, string(b))

	var got []State
	require.NoError(t, json.Unmarshal([]byte(`["hit","miss","present"]`), &got))
	assert.Equal(t, []State{Correct, Absent, Present}, got)
}
