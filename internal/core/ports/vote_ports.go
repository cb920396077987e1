package ports

import (
	"context"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

type CastVoteInput struct {
	ElectionID  domain.ElectionID
	CallerID    domain.AccountID
	CandidateID domain.AccountID
	Comment     string
	// Donation is the deposit attached to the call.
	Donation domain.Amount
}

type VoteService interface {
	Cast(ctx context.Context, input CastVoteInput) (*domain.Vote, error)
}
