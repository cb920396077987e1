package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

// Set is an unordered set of JSON encodable members stored under a key prefix.
//
// Layout:
//
//	<prefix>/len       number of members
//	<prefix>/e/<n>     n-th member, for enumeration
//	<prefix>/m/<json>  membership marker holding n
type Set[T any] struct {
	kv     ports.KV
	prefix string
}

func NewSet[T any](kv ports.KV, prefix string) *Set[T] {
	return &Set[T]{kv: kv, prefix: prefix}
}

func (s *Set[T]) lenKey() string {
	return s.prefix + "/len"
}

func (s *Set[T]) elementKey(n uint64) string {
	return s.prefix + "/e/" + strconv.FormatUint(n, 10)
}

func (s *Set[T]) memberKey(encoded []byte) string {
	return s.prefix + "/m/" + string(encoded)
}

func (s *Set[T]) Len(ctx context.Context) (uint64, error) {
	raw, err := s.kv.Get(ctx, s.lenKey())
	if errors.Is(err, ports.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "corrupt set length at %s", s.lenKey())
	}
	return n, nil
}

func (s *Set[T]) Has(ctx context.Context, item T) (bool, error) {
	encoded, err := encode(item)
	if err != nil {
		return false, err
	}
	return s.kv.Has(ctx, s.memberKey(encoded))
}

// Add inserts item and reports whether it was absent.
func (s *Set[T]) Add(ctx context.Context, item T) (bool, error) {
	encoded, err := encode(item)
	if err != nil {
		return false, err
	}

	member := s.memberKey(encoded)
	found, err := s.kv.Has(ctx, member)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}

	n, err := s.Len(ctx)
	if err != nil {
		return false, err
	}
	if err := s.kv.Set(ctx, s.elementKey(n), encoded); err != nil {
		return false, err
	}
	if err := s.kv.Set(ctx, member, []byte(strconv.FormatUint(n, 10))); err != nil {
		return false, err
	}
	if err := s.kv.Set(ctx, s.lenKey(), []byte(strconv.FormatUint(n+1, 10))); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Set[T]) Values(ctx context.Context) ([]T, error) {
	n, err := s.Len(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]T, 0, n)
	for i := uint64(0); i < n; i++ {
		raw, err := s.kv.Get(ctx, s.elementKey(i))
		if err != nil {
			return nil, errors.Wrapf(err, "missing set element %s", s.elementKey(i))
		}
		var v T
		if err := decode(raw, &v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// Map stores one JSON encoded value per key under a key prefix.
type Map[K, V any] struct {
	kv     ports.KV
	prefix string
}

func NewMap[K, V any](kv ports.KV, prefix string) *Map[K, V] {
	return &Map[K, V]{kv: kv, prefix: prefix}
}

func (m *Map[K, V]) key(k K) (string, error) {
	encoded, err := encode(k)
	if err != nil {
		return "", err
	}
	return m.prefix + "/" + string(encoded), nil
}

func (m *Map[K, V]) Set(ctx context.Context, k K, v V) error {
	key, err := m.key(k)
	if err != nil {
		return err
	}
	encoded, err := encode(v)
	if err != nil {
		return err
	}
	return m.kv.Set(ctx, key, encoded)
}

// Get returns the value stored for k and whether one was present.
func (m *Map[K, V]) Get(ctx context.Context, k K) (V, bool, error) {
	var v V
	key, err := m.key(k)
	if err != nil {
		return v, false, err
	}

	raw, err := m.kv.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := decode(raw, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

// GetOrFail is Get with an absent key reported as ports.ErrKeyNotFound.
func (m *Map[K, V]) GetOrFail(ctx context.Context, k K) (V, error) {
	v, found, err := m.Get(ctx, k)
	if err != nil {
		return v, err
	}
	if !found {
		key, _ := m.key(k)
		return v, errors.Wrap(ports.ErrKeyNotFound, key)
	}
	return v, nil
}

func (m *Map[K, V]) Contains(ctx context.Context, k K) (bool, error) {
	key, err := m.key(k)
	if err != nil {
		return false, err
	}
	return m.kv.Has(ctx, key)
}

// SetMap maps a key to a set of values. The set is read, changed in memory
// and written back as a whole.
type SetMap[K, V any] struct {
	m *Map[K, []V]
}

func NewSetMap[K, V any](kv ports.KV, prefix string) *SetMap[K, V] {
	return &SetMap[K, V]{m: NewMap[K, []V](kv, prefix)}
}

// Get returns an empty slice for an absent key.
func (sm *SetMap[K, V]) Get(ctx context.Context, k K) ([]V, error) {
	values, found, err := sm.m.Get(ctx, k)
	if err != nil {
		return nil, err
	}
	if !found || values == nil {
		return []V{}, nil
	}
	return values, nil
}

// Add appends v to the set of k unless an equal value is already there.
func (sm *SetMap[K, V]) Add(ctx context.Context, k K, v V) (bool, error) {
	values, err := sm.Get(ctx, k)
	if err != nil {
		return false, err
	}

	encoded, err := encode(v)
	if err != nil {
		return false, err
	}
	for _, existing := range values {
		other, err := encode(existing)
		if err != nil {
			return false, err
		}
		if bytes.Equal(encoded, other) {
			return false, nil
		}
	}

	if err := sm.m.Set(ctx, k, append(values, v)); err != nil {
		return false, err
	}
	return true, nil
}

func (sm *SetMap[K, V]) Contains(ctx context.Context, k K) (bool, error) {
	return sm.m.Contains(ctx, k)
}

func encode(v any) ([]byte, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode value")
	}
	return encoded, nil
}

func decode(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(err, "failed to decode value")
	}
	return nil
}
