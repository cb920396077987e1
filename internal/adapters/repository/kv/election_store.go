package kv

import (
	"context"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

type electionStore struct {
	store ports.KVStore
}

// NewElectionStore runs every repository call of one operation inside a
// single transition of store.
func NewElectionStore(store ports.KVStore) ports.ElectionStore {
	return &electionStore{store: store}
}

func (s *electionStore) View(ctx context.Context, fn func(ports.ElectionRepository) error) error {
	return s.store.View(ctx, func(kv ports.KV) error {
		return fn(NewElectionRepository(kv))
	})
}

func (s *electionStore) Update(ctx context.Context, fn func(ports.ElectionRepository) error) error {
	return s.store.Update(ctx, func(kv ports.KV) error {
		return fn(NewElectionRepository(kv))
	})
}
