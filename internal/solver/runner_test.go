package solver

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/selector"
)

func TestRetry_StopsOnSuccess(t *testing.T) {
	var calls int
	res, err := Retry(context.Background(), 5, func(ctx context.Context, attempt int) (SessionResult, error) {
		calls++
		if attempt < 3 {
			return SessionResult{}, &SessionError{Session: "s", Row: 1, Err: ErrFeedbackTimeout}
		}
		return SessionResult{ID: "third", Solved: true}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "third", res.ID)
}

func TestRetry_GivesUpAfterBound(t *testing.T) {
	var calls int
	_, err := Retry(context.Background(), 0, func(ctx context.Context, attempt int) (SessionResult, error) {
		calls++
		return SessionResult{}, errors.New("browser did not start")
	})
	require.Error(t, err)
	assert.Equal(t, DefaultAttempts, calls)
	assert.Contains(t, err.Error(), "gave up after 5 attempts")
}

func TestRetry_FinalErrorsAreNotRetried(t *testing.T) {
	for _, final := range []error{ErrInvalidOpeningGuess, ErrExhaustedCandidates} {
		var calls int
		_, err := Retry(context.Background(), 5, func(ctx context.Context, attempt int) (SessionResult, error) {
			calls++
			return SessionResult{}, fmt.Errorf("wrapped: %w", final)
		})
		assert.ErrorIs(t, err, final)
		assert.Equal(t, 1, calls, final.Error())
	}
}

func TestRetry_LostIsClean(t *testing.T) {
	var calls int
	res, err := Retry(context.Background(), 5, func(ctx context.Context, attempt int) (SessionResult, error) {
		calls++
		return SessionResult{Solved: false, Rows: make([]GuessRecord, MaxRows)}, nil
	})
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.Equal(t, 1, calls)
}

func TestRetry_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Retry(ctx, 5, func(ctx context.Context, attempt int) (SessionResult, error) {
		t.Fatal("attempt after cancellation")
		return SessionResult{}, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSessions_IndependentSessionsShareStore(t *testing.T) {
	store := newMemStore(words...)
	var inflight, peak atomic.Int32

	results, err := RunSessions(context.Background(), 6, 3, func(ctx context.Context, i int) (SessionResult, error) {
		n := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		game := &fakeGame{answer: words[i*3], reject: map[string]bool{"nymph": true}}
		return NewSession(game, store, Options{Selector: selector.Seeded(uint64(i))}).Run(ctx)
	})
	require.NoError(t, err)
	require.Len(t, results, 6)
	assert.LessOrEqual(t, peak.Load(), int32(3))

	ids := map[string]bool{}
	for i, r := range results {
		ids[r.ID] = true
		if r.Solved {
			assert.Equal(t, words[i*3], r.Solution)
		}
	}
	assert.Len(t, ids, 6, "every session has its own id")
}

func TestRunSessions_JoinsErrors(t *testing.T) {
	_, err := RunSessions(context.Background(), 3, 0, func(ctx context.Context, i int) (SessionResult, error) {
		if i == 1 {
			return SessionResult{}, ErrExhaustedCandidates
		}
		return SessionResult{Solved: true}, nil
	})
	require.ErrorIs(t, err, ErrExhaustedCandidates)
	assert.Contains(t, err.Error(), "session 2")
}
