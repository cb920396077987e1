package main

import (
	"github.com/spf13/cobra"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

func (c *cli) candidatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Register and list candidates",
	}
	cmd.AddCommand(c.candidatesListCmd(), c.candidatesRegisterCmd())
	return cmd
}

func (c *cli) candidatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <election-id>",
		Short: "List the candidates of an election",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseElectionID(args[0])
			if err != nil {
				return err
			}
			candidates, err := c.app.Queries.ListCandidates(cmd.Context(), id)
			if err != nil {
				return err
			}
			printCandidates(cmd.OutOrStdout(), candidates)
			return nil
		},
	}
}

func (c *cli) candidatesRegisterCmd() *cobra.Command {
	var name, slogan, goals string

	cmd := &cobra.Command{
		Use:   "register <election-id>",
		Short: "Register --as as a candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseElectionID(args[0])
			if err != nil {
				return err
			}
			caller, err := c.caller()
			if err != nil {
				return err
			}

			candidate, err := c.app.Candidacy.Register(cmd.Context(), ports.RegisterCandidacyInput{
				ElectionID: id,
				CallerID:   caller,
				Name:       name,
				Slogan:     slogan,
				Goals:      goals,
			})
			if err != nil {
				return err
			}
			printCandidates(cmd.OutOrStdout(), []domain.Candidate{*candidate})
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Name printed on the ballot")
	cmd.Flags().StringVar(&slogan, "slogan", "", "Campaign slogan")
	cmd.Flags().StringVar(&goals, "goals", "", "Campaign goals")
	return cmd
}
