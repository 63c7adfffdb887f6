package main

import (
	"fmt"
	"time"

	"github.com/linskybing/formpilot/internal/api/middleware"
	"github.com/linskybing/formpilot/internal/config"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var email string
	var expire time.Duration
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Sign an API token with the configured secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadConfig()
			middleware.Init()
			token, err := middleware.GenerateToken(args[0], email, expire)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&expire, "expire", 24*time.Hour, "token lifetime")
	return cmd
}
