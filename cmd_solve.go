package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/gameclient"
	"github.com/robalobadob/wordle/apps/go-solver/internal/present"
	"github.com/robalobadob/wordle/apps/go-solver/internal/selector"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

type solveFlags struct {
	firstGuess string
	answer     string
	export     string
	remote     string
	sessions   int
	parallel   int
	attempts   int
	seed       uint64
	quiet      bool
}

var solveOpts solveFlags

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Play Wordle games with the solver",
	Long: `Plays one game (or --sessions N games in parallel) until solved or out of rows.

Local games use the word of the day unless --answer is given. With --remote (or
GAME_SERVER_URL) the solver plays against a Wordle server instead.`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVar(&solveOpts.firstGuess, "first-guess", "", "opening guess (a rejection ends the session)")
	f.StringVar(&solveOpts.answer, "answer", "", "secret word for local games (default: word of the day)")
	f.StringVar(&solveOpts.export, "export", "", "append a markdown results table to this file (default EXPORT_FILE)")
	f.StringVar(&solveOpts.remote, "remote", "", "game server base URL (default GAME_SERVER_URL)")
	f.IntVar(&solveOpts.sessions, "sessions", 1, "number of independent sessions")
	f.IntVar(&solveOpts.parallel, "parallel", 0, "concurrent sessions (default PARALLEL_SESSIONS)")
	f.IntVar(&solveOpts.attempts, "attempts", 0, "fresh sessions to try before giving up (default SESSION_ATTEMPTS)")
	f.Uint64Var(&solveOpts.seed, "seed", 0, "seed for reproducible guess selection (default SOLVER_SEED)")
	f.BoolVarP(&solveOpts.quiet, "quiet", "q", false, "do not draw the board")
}

func runSolve(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	o := solveOpts.withDefaults(cfg)
	if o.sessions < 1 {
		return fmt.Errorf("--sessions must be at least 1")
	}

	d, err := openDeps(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.close(); err != nil {
			log.Error().Err(err).Msg("close dependencies")
		}
	}()

	answer := strings.ToLower(strings.TrimSpace(o.answer))
	if answer == "" && o.remote == "" {
		answer = daily.Answer(time.Now(), cfg.DailySalt, d.dict.Words())
	}

	shared := present.Multi{present.Log{}, present.NewHistory(daily.NewStore(d.db))}
	if o.export != "" {
		shared = append(shared, present.NewMarkdown(o.export))
	}

	newGame := func(ctx context.Context) (solver.Game, error) {
		if o.remote != "" {
			return gameclient.New(ctx, o.remote, answer, nil)
		}
		return game.NewLocal(game.New(answer, d.dict)), nil
	}

	play := func(ctx context.Context, i int, p solver.Presenter) (solver.SessionResult, error) {
		return solver.Retry(ctx, o.attempts, func(ctx context.Context, attempt int) (solver.SessionResult, error) {
			g, err := newGame(ctx)
			if err != nil {
				return solver.SessionResult{}, fmt.Errorf("new game: %w", err)
			}
			opts := solver.Options{
				OpeningGuess:    o.firstGuess,
				FeedbackTimeout: cfg.FeedbackTimeout,
				Presenter:       p,
			}
			if o.seed != 0 {
				opts.Selector = selector.Seeded(o.seed + uint64(i)*uint64(o.attempts) + uint64(attempt))
			}
			return solver.NewSession(g, d.store, opts).Run(ctx)
		})
	}

	if o.sessions == 1 {
		p := shared
		if !o.quiet {
			p = append(present.Multi{present.NewConsole(os.Stdout)}, shared...)
		}
		_, err := play(ctx, 0, p)
		return err
	}

	bar := progressbar.Default(int64(o.sessions), "solving")
	results, err := solver.RunSessions(ctx, o.sessions, o.parallel, func(ctx context.Context, i int) (solver.SessionResult, error) {
		defer func() { _ = bar.Add(1) }()
		return play(ctx, i, shared)
	})
	_ = bar.Finish()
	printSummary(results)
	return err
}

func (o solveFlags) withDefaults(c config.Config) solveFlags {
	if o.export == "" {
		o.export = c.ExportFile
	}
	if o.remote == "" {
		o.remote = c.GameServerURL
	}
	if o.parallel <= 0 {
		o.parallel = c.ParallelSessions
	}
	if o.attempts <= 0 {
		o.attempts = c.SessionAttempts
	}
	if o.seed == 0 {
		o.seed = c.SolverSeed
	}
	return o
}

// printSummary reports how the finished sessions went.
func printSummary(results []solver.SessionResult) {
	var solved, rows int
	for _, r := range results {
		if r.Solved {
			solved++
			rows += len(r.Rows)
		}
	}
	fmt.Printf("\n%d/%d sessions solved", solved, len(results))
	if solved > 0 {
		fmt.Printf(", %.2f guesses on average", float64(rows)/float64(solved))
	}
	fmt.Println()
}
