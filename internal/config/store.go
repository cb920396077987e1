package config

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/election/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/election/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/election/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/election/internal/core/ports"
)

// OpenStore opens the key-value backend selected by Storage.Driver.
func OpenStore(ctx context.Context, cfg *Config) (ports.KVStore, error) {
	switch cfg.Storage.Driver {
	case DriverMemory:
		return memory.NewStore(), nil
	case DriverSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverPostgres:
		db, err := sql.Open("postgres", cfg.PostgresConnString())
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to reach postgres: %w", err)
		}
		return postgres.NewKVStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
