package main

import (
	"errors"
	"fmt"
	"time"

	"eventmanager/config"
	"eventmanager/internal/adapters/auth"

	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenExpiry  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an organizer bearer token signed with AUTH_JWT_SECRET",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cfg.AuthEnabled() {
			return errors.New("AUTH_JWT_SECRET is not set")
		}
		token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(tokenSubject, tokenExpiry)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "organizer", "token subject")
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", 24*time.Hour, "token lifetime")
}
