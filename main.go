// main.go
//
// Entry point for the wordle-solver CLI.
// Commands:
//   - solve: play one or more games (local or against a game server).
//   - serve: run the HTTP API.
//   - token: mint a bearer token for the solver endpoints.
//
// Configuration comes from the environment (and .env); flags override per command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
)

var (
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Solve Wordle games by constraint filtering",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			cfg.SetupLogging(os.Stderr)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(solveCmd, serveCmd, tokenCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("wordle-solver")
	}
}
