package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/vncsmyrnk/election/internal/core/ports"
)

var errReadOnly = errors.New("write attempted in a read-only view")

type kvEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey"`
	Value     []byte `gorm:"column:entry_value;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

var _ ports.KVStore = (*Store)(nil)

// Store keeps the key-value entries in a single SQLite file.
type Store struct {
	mu sync.RWMutex
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) View(ctx context.Context, fn func(ports.KV) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(&gormKV{db: s.db.WithContext(ctx), readOnly: true})
}

func (s *Store) Update(ctx context.Context, fn func(ports.KV) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormKV{db: tx})
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormKV struct {
	db       *gorm.DB
	readOnly bool
}

func (k *gormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry kvEntry
	err := k.db.WithContext(ctx).Where("entry_key = ?", key).Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return entry.Value, nil
}

func (k *gormKV) Has(ctx context.Context, key string) (bool, error) {
	var count int64
	err := k.db.WithContext(ctx).Model(&kvEntry{}).Where("entry_key = ?", key).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}
	return count > 0, nil
}

func (k *gormKV) Set(ctx context.Context, key string, value []byte) error {
	if k.readOnly {
		return errReadOnly
	}
	if value == nil {
		value = []byte{}
	}

	entry := kvEntry{Key: key, Value: value}
	err := k.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}
