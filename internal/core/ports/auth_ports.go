package ports

import (
	"context"

	"github.com/vncsmyrnk/election/internal/core/domain"
)

// TokenVerifier resolves a bearer token to the calling account.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.AccountID, error)
}
