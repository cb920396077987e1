package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/election/internal/core/domain"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

type systemClock struct{}

func NewSystemClock() ports.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type uuidGenerator struct{}

// NewUUIDGenerator draws election ids from the first 32 bits of a random UUID.
func NewUUIDGenerator() ports.IDGenerator {
	return uuidGenerator{}
}

func (uuidGenerator) NextID() domain.ElectionID {
	return domain.ElectionID(uuid.New().ID())
}
