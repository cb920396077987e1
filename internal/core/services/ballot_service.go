package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type voteService struct {
	store ports.ElectionStore
	clock ports.Clock
}

func NewVoteService(store ports.ElectionStore, clock ports.Clock) ports.VoteService {
	return &voteService{
		store: store,
		clock: clock,
	}
}

func (s *voteService) Cast(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, error) {
	if err := input.CallerID.Validate(); err != nil {
		return nil, fmt.Errorf("caller: %w", err)
	}
	if err := input.CandidateID.Validate(); err != nil {
		return nil, fmt.Errorf("candidate: %w", err)
	}

	now := s.clock.Now().UTC()

	var vote *domain.Vote
	err := s.store.Update(ctx, func(repo ports.ElectionRepository) error {
		info, err := repo.GetElectionInfo(ctx, input.ElectionID)
		if err != nil {
			return err
		}

		// Voting is open from StartDate through EndDate, both inclusive.
		if err := info.VotingError(now); err != nil {
			return fmt.Errorf("%w: election %d runs from %s to %s", err, info.ID, info.StartDate.Format(time.RFC3339), info.EndDate.Format(time.RFC3339))
		}

		registered, err := repo.HasCandidate(ctx, input.ElectionID, input.CandidateID)
		if err != nil {
			return err
		}
		if !registered {
			return fmt.Errorf("%w: %s", domain.ErrCandidateNotFound, input.CandidateID)
		}

		voted, err := repo.HasVoted(ctx, input.ElectionID, input.CallerID)
		if err != nil {
			return err
		}
		if voted {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyVoted, input.CallerID)
		}

		vote = &domain.Vote{
			AccountID:   input.CallerID,
			Date:        now,
			CandidateID: input.CandidateID,
			Comment:     input.Comment,
			Donation:    input.Donation,
		}
		return repo.SaveVote(ctx, input.ElectionID, vote)
	})
	if err != nil {
		return nil, err
	}

	return vote, nil
}
