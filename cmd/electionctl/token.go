package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vncsmyrnk/election/internal/adapters/auth/token"
	"github.com/vncsmyrnk/election/internal/core/domain"
)

func (c *cli) tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API access tokens",
	}

	var ttl time.Duration
	issue := &cobra.Command{
		Use:         "issue <account-id>",
		Short:       "Print a signed access token for an account",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"storage": "none"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Auth.JWTSecret == "" {
				return fmt.Errorf("auth.jwt_secret is not configured")
			}
			signed, err := token.NewHMAC(c.cfg.Auth.JWTSecret).Issue(domain.AccountID(args[0]), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	issue.Flags().DurationVar(&ttl, "ttl", token.DefaultTTL, "Token lifetime")

	cmd.AddCommand(issue)
	return cmd
}
