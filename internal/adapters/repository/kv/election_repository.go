package kv

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const (
	electionIDsPrefix   = "elections/ids"
	electionInfosPrefix = "elections/info"
)

type electionRepository struct {
	kv    ports.KV
	ids   *Set[domain.ElectionID]
	infos *Map[domain.ElectionID, domain.ElectionInfo]
}

// NewElectionRepository lays the election registry out over kv.
func NewElectionRepository(kv ports.KV) ports.ElectionRepository {
	return &electionRepository{
		kv:    kv,
		ids:   NewSet[domain.ElectionID](kv, electionIDsPrefix),
		infos: NewMap[domain.ElectionID, domain.ElectionInfo](kv, electionInfosPrefix),
	}
}

func electionPrefix(id domain.ElectionID) string {
	return fmt.Sprintf("elections/%d", id)
}

func (r *electionRepository) candidates(id domain.ElectionID) *Set[domain.Candidate] {
	return NewSet[domain.Candidate](r.kv, electionPrefix(id)+"/candidates")
}

func (r *electionRepository) candidateIDs(id domain.ElectionID) *Set[domain.AccountID] {
	return NewSet[domain.AccountID](r.kv, electionPrefix(id)+"/candidate-ids")
}

func (r *electionRepository) votes(id domain.ElectionID) *SetMap[domain.AccountID, domain.Vote] {
	return NewSetMap[domain.AccountID, domain.Vote](r.kv, electionPrefix(id)+"/votes")
}

func (r *electionRepository) voters(id domain.ElectionID) *Set[domain.AccountID] {
	return NewSet[domain.AccountID](r.kv, electionPrefix(id)+"/voters")
}

func (r *electionRepository) ElectionExists(ctx context.Context, id domain.ElectionID) (bool, error) {
	exists, err := r.ids.Has(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check election %d: %w", id, err)
	}
	return exists, nil
}

func (r *electionRepository) SaveElection(ctx context.Context, info *domain.ElectionInfo) error {
	if err := r.infos.Set(ctx, info.ID, *info); err != nil {
		return fmt.Errorf("failed to save election %d: %w", info.ID, err)
	}
	if _, err := r.ids.Add(ctx, info.ID); err != nil {
		return fmt.Errorf("failed to index election %d: %w", info.ID, err)
	}
	return nil
}

func (r *electionRepository) GetElectionInfo(ctx context.Context, id domain.ElectionID) (*domain.ElectionInfo, error) {
	exists, err := r.ElectionExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: no election with id [%d]", domain.ErrElectionNotFound, id)
	}

	info, err := r.infos.GetOrFail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get election %d: %w", id, err)
	}
	return &info, nil
}

func (r *electionRepository) ListElectionInfos(ctx context.Context) ([]domain.ElectionInfo, error) {
	ids, err := r.ids.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list election ids: %w", err)
	}

	infos := make([]domain.ElectionInfo, 0, len(ids))
	for _, id := range ids {
		info, err := r.infos.GetOrFail(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get election %d: %w", id, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (r *electionRepository) LoadElection(ctx context.Context, id domain.ElectionID) (*domain.Election, error) {
	info, err := r.GetElectionInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	election := domain.NewElection(*info)

	election.Candidates, err = r.ListCandidates(ctx, id)
	if err != nil {
		return nil, err
	}

	candidateIDs, err := r.candidateIDs(id).Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate ids: %w", err)
	}
	election.CandidateIDs = mapset.NewThreadUnsafeSet(candidateIDs...)

	for _, candidateID := range candidateIDs {
		votes, err := r.ListVotes(ctx, id, candidateID)
		if err != nil {
			return nil, err
		}
		if len(votes) > 0 {
			election.VotesByCandidate[candidateID] = votes
		}
	}

	voters, err := r.voters(id).Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	election.Voters = mapset.NewThreadUnsafeSet(voters...)

	return election, nil
}

func (r *electionRepository) HasCandidate(ctx context.Context, id domain.ElectionID, accountID domain.AccountID) (bool, error) {
	registered, err := r.candidateIDs(id).Has(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to check candidate: %w", err)
	}
	return registered, nil
}

func (r *electionRepository) SaveCandidate(ctx context.Context, id domain.ElectionID, candidate *domain.Candidate) error {
	if _, err := r.candidates(id).Add(ctx, *candidate); err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	if _, err := r.candidateIDs(id).Add(ctx, candidate.AccountID); err != nil {
		return fmt.Errorf("failed to index candidate: %w", err)
	}
	return nil
}

func (r *electionRepository) ListCandidates(ctx context.Context, id domain.ElectionID) ([]domain.Candidate, error) {
	candidates, err := r.candidates(id).Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (r *electionRepository) HasVoted(ctx context.Context, id domain.ElectionID, accountID domain.AccountID) (bool, error) {
	voted, err := r.voters(id).Has(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return voted, nil
}

func (r *electionRepository) SaveVote(ctx context.Context, id domain.ElectionID, vote *domain.Vote) error {
	if _, err := r.voters(id).Add(ctx, vote.AccountID); err != nil {
		return fmt.Errorf("failed to index voter: %w", err)
	}
	if _, err := r.votes(id).Add(ctx, vote.CandidateID, *vote); err != nil {
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *electionRepository) ListVotes(ctx context.Context, id domain.ElectionID, candidateID domain.AccountID) ([]domain.Vote, error) {
	votes, err := r.votes(id).Get(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}
