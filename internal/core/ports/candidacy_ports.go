package ports

import (
	"context"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

type RegisterCandidacyInput struct {
	ElectionID domain.ElectionID
	CallerID   domain.AccountID
	Name       string
	Slogan     string
	Goals      string
}

type CandidacyService interface {
	Register(ctx context.Context, input RegisterCandidacyInput) (*domain.Candidate, error)
}
