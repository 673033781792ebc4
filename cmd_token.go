package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
)

var (
	tokenName string
	tokenDays int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for POST /solve and GET /sessions/{id}",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		days := tokenDays
		if days <= 0 {
			days = cfg.JWTExpiresDays
		}
		tok, exp, err := httpserver.SignToken(cfg.JWTSecret, uuid.NewString(), tokenName, days)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format("2006-01-02 15:04 MST"))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenName, "name", "operator", "username claim")
	tokenCmd.Flags().IntVar(&tokenDays, "days", 0, "lifetime in days (default JWT_EXPIRES_DAYS)")
}
