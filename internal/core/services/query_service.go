package services

import (
	"context"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type queryService struct {
	store ports.ElectionStore
}

func NewQueryService(store ports.ElectionStore) ports.QueryService {
	return &queryService{
		store: store,
	}
}

func (s *queryService) ListCandidates(ctx context.Context, id domain.ElectionID) ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	err := s.store.View(ctx, func(repo ports.ElectionRepository) error {
		if _, err := repo.GetElectionInfo(ctx, id); err != nil {
			return err
		}

		var err error
		candidates, err = repo.ListCandidates(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *queryService) ListVotes(ctx context.Context, id domain.ElectionID) (*domain.ElectionVotes, error) {
	var result *domain.ElectionVotes
	err := s.store.View(ctx, func(repo ports.ElectionRepository) error {
		info, err := repo.GetElectionInfo(ctx, id)
		if err != nil {
			return err
		}

		candidates, err := repo.ListCandidates(ctx, id)
		if err != nil {
			return err
		}

		result = &domain.ElectionVotes{
			Election: *info,
			Votes:    make([]domain.CandidateVotes, 0, len(candidates)),
		}
		for _, candidate := range candidates {
			votes, err := repo.ListVotes(ctx, id, candidate.AccountID)
			if err != nil {
				return err
			}
			result.Votes = append(result.Votes, domain.CandidateVotes{
				Candidate: candidate,
				Votes:     votes,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *queryService) GetElection(ctx context.Context, id domain.ElectionID) (*domain.Election, error) {
	var election *domain.Election
	err := s.store.View(ctx, func(repo ports.ElectionRepository) error {
		var err error
		election, err = repo.LoadElection(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return election, nil
}
