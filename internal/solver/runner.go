// internal/solver/runner.go
//
// Session orchestration above a single game.
//   - Retry: restart a failed session with a fresh game, up to a fixed bound.
//   - RunSessions: play independent sessions side by side.
//
// Sessions never share knowledge or pools; the only shared collaborator is the
// WordStore, whose implementations serialise removals.

package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultAttempts is how many times Retry starts a session before giving up.
const DefaultAttempts = 5

// Attempt builds and runs one session. attempt counts from 1.
type Attempt func(ctx context.Context, attempt int) (SessionResult, error)

// Retry runs fn until it reaches Won/Lost cleanly, fails with a non-retryable error,
// or attempts are used up. The last result and error are returned.
func Retry(ctx context.Context, attempts int, fn Attempt) (SessionResult, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	var (
		res SessionResult
		err error
	)
	for i := 1; i <= attempts; i++ {
		if cerr := ctx.Err(); cerr != nil {
			return res, cerr
		}
		res, err = fn(ctx, i)
		if err == nil {
			return res, nil
		}
		if !Retryable(err) {
			return res, err
		}
		log.Warn().Err(err).Int("attempt", i).Int("of", attempts).Msg("session failed, retrying")
	}
	return res, fmt.Errorf("gave up after %d attempts: %w", attempts, err)
}

// RunSessions runs n sessions with at most limit in flight (limit <= 0 means n).
// Every session runs to completion; the errors of failed ones are joined.
func RunSessions(ctx context.Context, n, limit int, fn func(ctx context.Context, i int) (SessionResult, error)) ([]SessionResult, error) {
	if limit <= 0 {
		limit = n
	}
	results := make([]SessionResult, n)
	errs := make([]error, n)

	var g errgroup.Group
	g.SetLimit(max(limit, 1))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i], errs[i] = fn(ctx, i)
			if errs[i] != nil {
				errs[i] = fmt.Errorf("session %d: %w", i+1, errs[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	return results, errors.Join(errs...)
}
