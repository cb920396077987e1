package ports

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KV is the key-value view handed to one state transition.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Has(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// KVStore runs state transitions against a persistent key-value store.
//
// Update calls are serialized. Writes made by fn are visible to later reads
// inside fn and are committed together when fn returns nil; otherwise none of
// them are. View reads a consistent snapshot and must not write.
type KVStore interface {
	View(ctx context.Context, fn func(KV) error) error
	Update(ctx context.Context, fn func(KV) error) error
	Close() error
}
