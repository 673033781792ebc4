package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (game, solver, history, metrics)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		d, err := openDeps(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := d.close(); err != nil {
				log.Error().Err(err).Msg("close dependencies")
			}
		}()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		srv := httpserver.New(httpserver.Deps{
			Dict:            d.dict,
			Words:           d.store,
			History:         daily.NewStore(d.db),
			Registry:        reg,
			Metrics:         solver.NewMetrics(reg),
			JWTSecret:       cfg.JWTSecret,
			DailySalt:       cfg.DailySalt,
			ClientOrigin:    cfg.ClientOrigin,
			FeedbackTimeout: cfg.FeedbackTimeout,
			Attempts:        cfg.SessionAttempts,
		})

		port := servePort
		if port == "" {
			port = cfg.Port
		}
		log.Info().Str("port", port).Str("store", cfg.WordsStore).Msg("starting wordle-solver")
		if err := srv.Start(ctx, ":"+port); err != nil {
			return err
		}
		log.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default PORT)")
}
