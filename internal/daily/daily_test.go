package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/database"
	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

func TestWordIndex_Deterministic(t *testing.T) {
	day := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("x", -5*3600))
	assert.Equal(t, "2024-03-10", DateKey(day))

	a := WordIndex(day, "salt", 1000)
	assert.Equal(t, a, WordIndex(day.UTC(), "salt", 1000))
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 1000)
	assert.Equal(t, 0, WordIndex(day, "salt", 0))

	list := []string{"crane", "plate", "slate", "trace"}
	assert.Contains(t, list, Answer(day, "salt", list))
	assert.Equal(t, Answer(day, "salt", list), Answer(day, "salt", list))
	assert.Empty(t, Answer(day, "salt", nil))
}

func TestWordIndex_DependsOnSalt(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for _, salt := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		seen[WordIndex(day, salt, 1<<20)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func result(id string, start time.Time, solved bool, words ...string) solver.SessionResult {
	res := solver.SessionResult{ID: id, Solved: solved, StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)}
	for i, w := range words {
		res.Rows = append(res.Rows, solver.GuessRecord{Row: i + 1, Word: w, Feedback: feedback.Score("crane", w)})
	}
	if solved {
		res.Solution = words[len(words)-1]
	}
	return res
}

func TestStore_RecordListGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, result("a", day, true, "arose", "trace", "crane")))
	require.NoError(t, s.Record(ctx, result("b", day, true, "arose", "crane")))
	require.NoError(t, s.Record(ctx, result("c", day, false, "slate")))
	require.NoError(t, s.Record(ctx, result("a", day, true, "crane")), "duplicate ids are ignored")
	require.NoError(t, s.Record(ctx, result("z", day.AddDate(0, 0, 1), true, "crane")))

	list, err := s.List(ctx, "2024-03-10", 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
	assert.Equal(t, []string{"arose:yg..g", "crane:ggggg"}, list[0].Rows)
	assert.Equal(t, int64(1500), list[0].ElapsedMs)
	assert.Equal(t, 3, list[1].Guesses)

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, got.Solved)
	assert.Equal(t, "crane", got.Solution)
	require.Len(t, got.Rows, 3)
	assert.Equal(t, feedback.Score("crane", "trace"), got.Rows[1].Feedback)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := s.AlreadySolved(ctx, "2024-03-10")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.AlreadySolved(ctx, "2024-03-12")
	require.NoError(t, err)
	assert.False(t, ok)
}
