package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

const maxIDAttempts = 32

const (
	DefaultStartsIn = 24 * time.Hour
	DefaultEndsIn   = 7 * 24 * time.Hour
)

var errIDSpaceExhausted = errors.New("failed to allocate a unique election id")

// Window holds the default offsets applied when an election is created
// without explicit dates.
type Window struct {
	StartsIn time.Duration
	EndsIn   time.Duration
}

func DefaultWindow() Window {
	return Window{StartsIn: DefaultStartsIn, EndsIn: DefaultEndsIn}
}

type electionService struct {
	store  ports.ElectionStore
	clock  ports.Clock
	ids    ports.IDGenerator
	window Window
}

func NewElectionService(store ports.ElectionStore, clock ports.Clock, ids ports.IDGenerator, window Window) ports.ElectionService {
	return &electionService{
		store:  store,
		clock:  clock,
		ids:    ids,
		window: window,
	}
}

func (s *electionService) Create(ctx context.Context, input ports.CreateElectionInput) (*domain.ElectionInfo, error) {
	if err := input.Initiator.Validate(); err != nil {
		return nil, fmt.Errorf("initiator: %w", err)
	}

	startsIn, endsIn := s.window.StartsIn, s.window.EndsIn
	if input.StartsIn != nil {
		startsIn = *input.StartsIn
	}
	if input.EndsIn != nil {
		endsIn = *input.EndsIn
	}
	// Candidacies close at the start, so the start must lie in the future.
	if startsIn <= 0 || endsIn <= startsIn {
		return nil, fmt.Errorf("%w: starts in %s, ends in %s", domain.ErrInvalidWindow, startsIn, endsIn)
	}

	now := s.clock.Now().UTC()

	var info *domain.ElectionInfo
	err := s.store.Update(ctx, func(repo ports.ElectionRepository) error {
		id, err := s.allocateID(ctx, repo)
		if err != nil {
			return err
		}

		info = &domain.ElectionInfo{
			ID:           id,
			Initiator:    input.Initiator,
			CreationDate: now,
			StartDate:    now.Add(startsIn),
			EndDate:      now.Add(endsIn),
			Title:        input.Title,
			Description:  input.Description,
		}
		return repo.SaveElection(ctx, info)
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// allocateID redraws on zero and on ids already taken.
func (s *electionService) allocateID(ctx context.Context, repo ports.ElectionRepository) (domain.ElectionID, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.ids.NextID()
		if id == 0 {
			continue
		}

		exists, err := repo.ElectionExists(ctx, id)
		if err != nil {
			return 0, err
		}
		if !exists {
			return id, nil
		}
	}
	return 0, errIDSpaceExhausted
}

func (s *electionService) Get(ctx context.Context, id domain.ElectionID) (*domain.ElectionInfo, error) {
	var info *domain.ElectionInfo
	err := s.store.View(ctx, func(repo ports.ElectionRepository) error {
		var err error
		info, err = repo.GetElectionInfo(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (s *electionService) List(ctx context.Context) ([]domain.ElectionInfo, error) {
	var infos []domain.ElectionInfo
	err := s.store.View(ctx, func(repo ports.ElectionRepository) error {
		var err error
		infos, err = repo.ListElectionInfos(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
	}
	return infos, nil
}
