package ports

import (
	"context"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

type QueryService interface {
	ListCandidates(ctx context.Context, id domain.ElectionID) ([]domain.Candidate, error)
	ListVotes(ctx context.Context, id domain.ElectionID) (*domain.ElectionVotes, error)
	GetElection(ctx context.Context, id domain.ElectionID) (*domain.Election, error)
}
