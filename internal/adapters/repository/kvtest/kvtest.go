// Package kvtest checks that a ports.KVStore honours the transition contract
// the election repository relies on.
package kvtest

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

// Run exercises store. The store must start empty.
func Run(t *testing.T, store ports.KVStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		err := store.View(ctx, func(kv ports.KV) error {
			_, err := kv.Get(ctx, "missing")
			assert.ErrorIs(t, err, ports.ErrKeyNotFound)

			found, err := kv.Has(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, found)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("committed writes are visible", func(t *testing.T) {
		err := store.Update(ctx, func(kv ports.KV) error {
			require.NoError(t, kv.Set(ctx, "a", []byte("1")))
			require.NoError(t, kv.Set(ctx, "a", []byte("2")))
			require.NoError(t, kv.Set(ctx, "empty", nil))

			// Writes are visible inside the same transition.
			value, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []byte("2"), value)
			return nil
		})
		require.NoError(t, err)

		err = store.View(ctx, func(kv ports.KV) error {
			value, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []byte("2"), value)

			found, err := kv.Has(ctx, "empty")
			require.NoError(t, err)
			assert.True(t, found)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("failed transition writes nothing", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.Update(ctx, func(kv ports.KV) error {
			require.NoError(t, kv.Set(ctx, "a", []byte("rolled back")))
			require.NoError(t, kv.Set(ctx, "b", []byte("rolled back")))
			return boom
		})
		require.ErrorIs(t, err, boom)

		err = store.View(ctx, func(kv ports.KV) error {
			value, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []byte("2"), value)

			found, err := kv.Has(ctx, "b")
			require.NoError(t, err)
			assert.False(t, found)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("view does not write", func(t *testing.T) {
		err := store.View(ctx, func(kv ports.KV) error {
			return kv.Set(ctx, "c", []byte("x"))
		})
		require.Error(t, err)

		err = store.View(ctx, func(kv ports.KV) error {
			found, err := kv.Has(ctx, "c")
			require.NoError(t, err)
			assert.False(t, found)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("updates are serialized", func(t *testing.T) {
		const workers = 8
		const rounds = 5

		var wg sync.WaitGroup
		errs := make(chan error, workers*rounds)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for r := 0; r < rounds; r++ {
					errs <- store.Update(ctx, increment)
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		err := store.View(ctx, func(kv ports.KV) error {
			value, err := kv.Get(ctx, "counter")
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(workers*rounds), string(value))
			return nil
		})
		require.NoError(t, err)
	})
}

func increment(kv ports.KV) error {
	ctx := context.Background()

	n := 0
	raw, err := kv.Get(ctx, "counter")
	switch {
	case errors.Is(err, ports.ErrKeyNotFound):
	case err != nil:
		return err
	default:
		if n, err = strconv.Atoi(string(raw)); err != nil {
			return err
		}
	}
	return kv.Set(ctx, "counter", []byte(strconv.Itoa(n+1)))
}
