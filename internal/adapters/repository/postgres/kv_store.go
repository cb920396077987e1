package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

// transitionLockID is the advisory lock key that serializes Update calls
// across every process sharing the database.
const transitionLockID int64 = 0x656c6563

type kvStore struct {
	db *sql.DB
}

func NewKVStore(db *sql.DB) ports.KVStore {
	return &kvStore{
		db: db,
	}
}

func (s *kvStore) View(ctx context.Context, fn func(ports.KV) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&txKV{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *kvStore) Update(ctx context.Context, fn func(ports.KV) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, transitionLockID); err != nil {
		return fmt.Errorf("failed to acquire transition lock: %w", err)
	}

	if err := fn(&txKV{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *kvStore) Close() error {
	return s.db.Close()
}

type txKV struct {
	tx *sql.Tx
}

func (k *txKV) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT entry_value FROM kv_entries WHERE entry_key = $1`

	var value []byte
	err := k.tx.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, nil
}

func (k *txKV) Has(ctx context.Context, key string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM kv_entries WHERE entry_key = $1)`

	var exists bool
	if err := k.tx.QueryRowContext(ctx, query, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}
	return exists, nil
}

func (k *txKV) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (entry_key, entry_value)
		VALUES ($1, $2)
		ON CONFLICT (entry_key) DO UPDATE
		SET entry_value = EXCLUDED.entry_value,
		    updated_at = NOW()
	`
	if value == nil {
		value = []byte{}
	}
	if _, err := k.tx.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}
