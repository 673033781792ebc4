// internal/solver/session.go
//
// The solver loop for a single game.
// Responsibilities:
//   - Own the session's KnowledgeState, candidate pool and local dictionary copy.
//   - Drive the row state machine: awaiting guess → submitted → accepted/rejected → won/lost.
//   - Retry rejected solver-chosen guesses on the same row after removing the word.
//   - Bound every submission by the feedback timeout.
//
// Execution is strictly sequential: one blocking submission at a time, and the
// state is updated before the next guess is chosen. A Session is single-use.

package solver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/knowledge"
	"github.com/robalobadob/wordle/apps/go-solver/internal/selector"
)

// DefaultFeedbackTimeout bounds a submission when Options.FeedbackTimeout is zero.
const DefaultFeedbackTimeout = 10 * time.Second

// Options configure a Session. Zero values are usable.
type Options struct {
	OpeningGuess    string             // caller-supplied first guess; rejection is fatal
	FeedbackTimeout time.Duration      // per-submission bound
	Selector        *selector.Selector // random source for guess selection
	Presenter       Presenter
	Metrics         *Metrics
}

type phase int

const (
	awaitingGuess phase = iota
	submitted
	accepted
	rejected
	won
	lost
)

// Session plays one game from an empty knowledge state.
type Session struct {
	id    string
	game  Game
	store WordStore
	opts  Options
	log   zerolog.Logger

	state *knowledge.State
	pool  []string
	dict  []string
	res   SessionResult
}

// NewSession prepares a session against game using store's dictionary.
func NewSession(game Game, store WordStore, opts Options) *Session {
	if opts.FeedbackTimeout <= 0 {
		opts.FeedbackTimeout = DefaultFeedbackTimeout
	}
	if opts.Selector == nil {
		opts.Selector = selector.New(nil)
	}
	if opts.Presenter == nil {
		opts.Presenter = nopPresenter{}
	}
	opts.OpeningGuess = strings.ToLower(strings.TrimSpace(opts.OpeningGuess))
	id := uuid.NewString()
	return &Session{
		id:    id,
		game:  game,
		store: store,
		opts:  opts,
		log:   log.With().Str("session", id).Logger(),
		state: knowledge.New(),
	}
}

// ID identifies the session in logs and results.
func (s *Session) ID() string { return s.id }

// Pool returns the current candidate pool.
func (s *Session) Pool() []string { return slices.Clone(s.pool) }

// State exposes the session's knowledge, for inspection after Run.
func (s *Session) State() *knowledge.State { return s.state }

// Run plays the game to a terminal state. A lost game is not an error.
// On error the returned result holds the rows played so far.
func (s *Session) Run(ctx context.Context) (SessionResult, error) {
	s.res = SessionResult{ID: s.id, StartedAt: time.Now().UTC()}
	err := s.run(ctx)
	s.res.FinishedAt = time.Now().UTC()
	s.opts.Metrics.observeSession(s.res, err)

	if err != nil {
		s.log.Error().Err(err).Int("rows", len(s.res.Rows)).Msg("session failed")
		return s.res, err
	}
	if perr := s.opts.Presenter.Finish(s.res); perr != nil {
		s.log.Warn().Err(perr).Msg("present result")
	}
	ev := s.log.Info().Bool("solved", s.res.Solved).Int("rows", len(s.res.Rows))
	if s.res.Solved {
		ev = ev.Str("solution", s.res.Solution)
	}
	ev.Msg("session finished")
	return s.res, nil
}

func (s *Session) run(ctx context.Context) error {
	if err := s.loadDictionary(ctx); err != nil {
		return &SessionError{Session: s.id, Row: 1, Err: err}
	}

	var (
		row         = 1
		ph          = awaitingGuess
		word        string
		fb          feedback.Feedback
		openingUsed bool
	)
	for {
		switch ph {
		case awaitingGuess:
			if row == 1 && s.opts.OpeningGuess != "" && !openingUsed {
				word, openingUsed = s.opts.OpeningGuess, true
			} else {
				next, err := s.nextGuess()
				if err != nil {
					return &SessionError{Session: s.id, Row: row, Err: err}
				}
				word = next
			}
			ph = submitted

		case submitted:
			out, err := s.submit(ctx, word, row)
			if err != nil {
				return &SessionError{Session: s.id, Row: row, Word: word, Err: err}
			}
			if !out.Accepted {
				ph = rejected
				continue
			}
			fb, ph = out.Feedback, accepted

		case rejected:
			if row == 1 && word == s.opts.OpeningGuess {
				return &SessionError{Session: s.id, Row: row, Word: word, Err: ErrInvalidOpeningGuess}
			}
			s.reject(ctx, word, row)
			ph = awaitingGuess

		case accepted:
			if err := s.state.Update(word, fb); err != nil {
				return &SessionError{Session: s.id, Row: row, Word: word, Err: err}
			}
			s.pool = knowledge.Filter(s.pool, s.state)
			rec := GuessRecord{Row: row, Word: word, Feedback: fb, PoolSize: len(s.pool)}
			s.res.Rows = append(s.res.Rows, rec)
			s.opts.Metrics.observeGuess(len(s.pool))
			s.opts.Presenter.Record(rec)
			s.log.Debug().Int("row", row).Str("word", word).Str("pattern", fb.Pattern()).
				Int("pool", len(s.pool)).Msg("guess accepted")

			switch {
			case s.state.IsWinningWord(word):
				ph = won
			case len(s.pool) == 0:
				// reported even on the last row: an empty pool is a constraint fault, not a loss
				return &SessionError{Session: s.id, Row: row, Word: word, Err: ErrExhaustedCandidates}
			case row == MaxRows:
				ph = lost
			default:
				row++
				ph = awaitingGuess
			}

		case won:
			s.res.Solved, s.res.Solution = true, word
			return nil

		case lost:
			return nil
		}
	}
}

// loadDictionary seeds the pool and the local dictionary from the store.
func (s *Session) loadDictionary(ctx context.Context) error {
	words, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	dict := make([]string, 0, len(words))
	for w := range words {
		if len(w) == feedback.WordLength {
			dict = append(dict, w)
		}
	}
	if len(dict) == 0 {
		return fmt.Errorf("load dictionary: %w", selector.ErrEmptyDictionary)
	}
	slices.Sort(dict)
	s.dict = dict
	s.pool = slices.Clone(dict)
	return nil
}

func (s *Session) nextGuess() (string, error) {
	if len(s.pool) == 0 {
		return "", ErrExhaustedCandidates
	}
	w, err := s.opts.Selector.Select(s.pool, s.dict, s.state)
	if errors.Is(err, selector.ErrEmptyDictionary) {
		return "", fmt.Errorf("%w: %w", ErrExhaustedCandidates, err)
	}
	return w, err
}

// submit calls the game with the feedback timeout applied.
func (s *Session) submit(ctx context.Context, word string, row int) (Outcome, error) {
	sctx, cancel := context.WithTimeout(ctx, s.opts.FeedbackTimeout)
	defer cancel()

	out, err := s.game.Submit(sctx, word, row)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return Outcome{}, fmt.Errorf("%w after %s", ErrFeedbackTimeout, s.opts.FeedbackTimeout)
		}
		return Outcome{}, fmt.Errorf("submit: %w", err)
	}
	if out.Accepted && out.Feedback.Word() != word {
		return Outcome{}, fmt.Errorf("submit: %w: game answered for %q", knowledge.ErrInvalidFeedback, out.Feedback.Word())
	}
	return out, nil
}

// reject drops word from the pool and the dictionary, locally and in the store.
func (s *Session) reject(ctx context.Context, word string, row int) {
	s.pool = without(s.pool, word)
	s.dict = without(s.dict, word)
	s.res.Rejected = append(s.res.Rejected, word)
	s.opts.Metrics.observeRejection()
	s.log.Info().Int("row", row).Str("word", word).Msg("guess rejected, removing from dictionary")
	if err := s.store.Remove(ctx, word); err != nil {
		s.log.Warn().Err(err).Str("word", word).Msg("persist word removal")
	}
}

// without returns a copy of list lacking word.
func without(list []string, word string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		if w != word {
			out = append(out, w)
		}
	}
	return out
}
