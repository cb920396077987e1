package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

func (c *cli) votesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "votes",
		Short: "Cast and list votes",
	}
	cmd.AddCommand(c.votesListCmd(), c.votesCastCmd())
	return cmd
}

func (c *cli) votesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <election-id>",
		Short: "List every candidate with the votes cast for them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseElectionID(args[0])
			if err != nil {
				return err
			}
			votes, err := c.app.Queries.ListVotes(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n\n", votes.Election.Title, votes.Election.ID)
			printVotes(cmd.OutOrStdout(), votes)
			return nil
		},
	}
}

func (c *cli) votesCastCmd() *cobra.Command {
	var comment string
	var deposit uint64

	cmd := &cobra.Command{
		Use:   "cast <election-id> <candidate-id>",
		Short: "Cast the vote of --as for a candidate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseElectionID(args[0])
			if err != nil {
				return err
			}
			caller, err := c.caller()
			if err != nil {
				return err
			}

			vote, err := c.app.Votes.Cast(cmd.Context(), ports.CastVoteInput{
				ElectionID:  id,
				CallerID:    caller,
				CandidateID: domain.AccountID(args[1]),
				Comment:     comment,
				Donation:    domain.Amount(deposit),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s voted for %s in election %d\n", vote.AccountID, vote.CandidateID, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "Comment attached to the vote")
	cmd.Flags().Uint64Var(&deposit, "deposit", 0, "Donation attached to the vote, in the smallest monetary unit")
	return cmd
}
