package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

func (c *cli) electionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elections",
		Short: "Create and inspect elections",
	}
	cmd.AddCommand(c.electionsListCmd(), c.electionsCreateCmd(), c.electionsShowCmd())
	return cmd
}

func (c *cli) electionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every election",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := c.app.Elections.List(cmd.Context())
			if err != nil {
				return err
			}
			printElections(cmd.OutOrStdout(), infos)
			return nil
		},
	}
}

func (c *cli) electionsCreateCmd() *cobra.Command {
	var title, description string
	var startsIn, endsIn time.Duration

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an election initiated by --as",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initiator, err := c.caller()
			if err != nil {
				return err
			}

			input := ports.CreateElectionInput{
				Initiator:   initiator,
				Title:       title,
				Description: description,
			}
			if cmd.Flags().Changed("starts-in") {
				input.StartsIn = &startsIn
			}
			if cmd.Flags().Changed("ends-in") {
				input.EndsIn = &endsIn
			}

			info, err := c.app.Elections.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			printElections(cmd.OutOrStdout(), []domain.ElectionInfo{*info})
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Election title")
	cmd.Flags().StringVar(&description, "description", "", "Election description")
	cmd.Flags().DurationVar(&startsIn, "starts-in", 0, "Time until voting opens (default from config)")
	cmd.Flags().DurationVar(&endsIn, "ends-in", 0, "Time until voting closes (default from config)")
	return cmd
}

func (c *cli) electionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <election-id>",
		Short: "Show one election",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseElectionID(args[0])
			if err != nil {
				return err
			}
			info, err := c.app.Elections.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printElections(cmd.OutOrStdout(), []domain.ElectionInfo{*info})
			return nil
		},
	}
}
