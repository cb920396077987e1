package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type candidacyService struct {
	store ports.ElectionStore
	clock ports.Clock
}

func NewCandidacyService(store ports.ElectionStore, clock ports.Clock) ports.CandidacyService {
	return &candidacyService{
		store: store,
		clock: clock,
	}
}

func (s *candidacyService) Register(ctx context.Context, input ports.RegisterCandidacyInput) (*domain.Candidate, error) {
	if err := input.CallerID.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()

	var candidate *domain.Candidate
	err := s.store.Update(ctx, func(repo ports.ElectionRepository) error {
		info, err := repo.GetElectionInfo(ctx, input.ElectionID)
		if err != nil {
			return err
		}

		if !info.AcceptsCandidacies(now) {
			return fmt.Errorf("%w: election %d started at %s", domain.ErrElectionStarted, info.ID, info.StartDate.Format(time.RFC3339))
		}

		registered, err := repo.HasCandidate(ctx, input.ElectionID, input.CallerID)
		if err != nil {
			return err
		}
		if registered {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyRegistered, input.CallerID)
		}

		if err := validateCandidacy(input); err != nil {
			return err
		}

		candidate = &domain.Candidate{
			AccountID:        input.CallerID,
			RegistrationDate: now,
			Name:             input.Name,
			Slogan:           input.Slogan,
			Goals:            input.Goals,
		}
		return repo.SaveCandidate(ctx, input.ElectionID, candidate)
	})
	if err != nil {
		return nil, err
	}

	return candidate, nil
}

func validateCandidacy(input ports.RegisterCandidacyInput) error {
	switch {
	case input.Name == "":
		return domain.ErrNameRequired
	case input.Slogan == "":
		return domain.ErrSloganRequired
	case input.Goals == "":
		return domain.ErrGoalsRequired
	}
	return nil
}
