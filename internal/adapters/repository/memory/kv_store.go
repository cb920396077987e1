package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

var errReadOnly = errors.New("write attempted in a read-only view")

var _ ports.KVStore = (*Store)(nil)

// Store is an in-memory KVStore. Update stages writes and applies them only
// when the transition succeeds.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewStore() *Store {
	return &Store{
		data: map[string][]byte{},
	}
}

func (s *Store) View(ctx context.Context, fn func(ports.KV) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(&readView{data: s.data})
}

func (s *Store) Update(ctx context.Context, fn func(ports.KV) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &stagedView{
		readView: readView{data: s.data},
		writes:   map[string][]byte{},
	}
	if err := fn(staged); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for k, v := range staged.writes {
		s.data[k] = v
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

type readView struct {
	data map[string][]byte
}

func (v *readView) Get(_ context.Context, key string) ([]byte, error) {
	value, found := v.data[key]
	if !found {
		return nil, ports.ErrKeyNotFound
	}
	return clone(value), nil
}

func (v *readView) Has(_ context.Context, key string) (bool, error) {
	_, found := v.data[key]
	return found, nil
}

func (v *readView) Set(context.Context, string, []byte) error {
	return errReadOnly
}

type stagedView struct {
	readView
	writes map[string][]byte
}

func (v *stagedView) Get(ctx context.Context, key string) ([]byte, error) {
	if value, found := v.writes[key]; found {
		return clone(value), nil
	}
	return v.readView.Get(ctx, key)
}

func (v *stagedView) Has(ctx context.Context, key string) (bool, error) {
	if _, found := v.writes[key]; found {
		return true, nil
	}
	return v.readView.Has(ctx, key)
}

func (v *stagedView) Set(_ context.Context, key string, value []byte) error {
	v.writes[key] = clone(value)
	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
