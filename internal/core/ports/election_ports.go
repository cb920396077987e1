package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

// ElectionRepository reads and writes election state inside a single transition.
type ElectionRepository interface {
	ElectionExists(ctx context.Context, id domain.ElectionID) (bool, error)
	SaveElection(ctx context.Context, info *domain.ElectionInfo) error
	GetElectionInfo(ctx context.Context, id domain.ElectionID) (*domain.ElectionInfo, error)
	ListElectionInfos(ctx context.Context) ([]domain.ElectionInfo, error)
	LoadElection(ctx context.Context, id domain.ElectionID) (*domain.Election, error)

	HasCandidate(ctx context.Context, id domain.ElectionID, accountID domain.AccountID) (bool, error)
	SaveCandidate(ctx context.Context, id domain.ElectionID, candidate *domain.Candidate) error
	ListCandidates(ctx context.Context, id domain.ElectionID) ([]domain.Candidate, error)

	HasVoted(ctx context.Context, id domain.ElectionID, accountID domain.AccountID) (bool, error)
	SaveVote(ctx context.Context, id domain.ElectionID, vote *domain.Vote) error
	ListVotes(ctx context.Context, id domain.ElectionID, candidateID domain.AccountID) ([]domain.Vote, error)
}

// ElectionStore hands out repositories bound to one read or one write transition.
type ElectionStore interface {
	View(ctx context.Context, fn func(ElectionRepository) error) error
	Update(ctx context.Context, fn func(ElectionRepository) error) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NextID() domain.ElectionID
}

type CreateElectionInput struct {
	Initiator   domain.AccountID
	Title       string
	Description string
	// StartsIn and EndsIn are offsets from the creation time. Nil selects the default.
	StartsIn *time.Duration
	EndsIn   *time.Duration
}

type ElectionService interface {
	Create(ctx context.Context, input CreateElectionInput) (*domain.ElectionInfo, error)
	Get(ctx context.Context, id domain.ElectionID) (*domain.ElectionInfo, error)
	List(ctx context.Context) ([]domain.ElectionInfo, error)
}
