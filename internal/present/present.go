// Package present holds the solver.Presenter implementations: the console
// board, the markdown export, the SQLite history sink and a fan-out.
package present

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// Multi forwards to every presenter in order.
type Multi []solver.Presenter

func (m Multi) Record(rec solver.GuessRecord) {
	for _, p := range m {
		p.Record(rec)
	}
}

// Finish calls every presenter and joins their errors.
func (m Multi) Finish(res solver.SessionResult) error {
	var errs []error
	for _, p := range m {
		if err := p.Finish(res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// History stores finished sessions in the solve history.
type History struct {
	store   *daily.Store
	timeout time.Duration
}

func NewHistory(s *daily.Store) *History { return &History{store: s, timeout: 5 * time.Second} }

func (h *History) Record(solver.GuessRecord) {}

func (h *History) Finish(res solver.SessionResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	return h.store.Record(ctx, res)
}

// Log writes one debug event per guess.
type Log struct{}

func (Log) Record(rec solver.GuessRecord) {
	log.Debug().
		Int("row", rec.Row).
		Str("word", rec.Word).
		Str("pattern", rec.Feedback.Pattern()).
		Int("pool", rec.PoolSize).
		Msg("guess")
}

func (Log) Finish(solver.SessionResult) error { return nil }
