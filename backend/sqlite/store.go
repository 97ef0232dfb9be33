// Package sqlite provides a GORM-backed SQLite handle for the registry.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	gsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jacentio/dbkit/registry"
)

// Default identifies the conventional SQLite store.
var Default = ID("sqlite")

// ID returns the identifier of a SQLite store named name.
func ID(name string) registry.Identifier[*Store, Config] {
	return registry.NewIdentifier[*Store, Config](name)
}

// Store wraps a GORM database handle.
type Store struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	config Config
}

// Open opens the database, creating the parent directory of a file database.
// A positive poolSize overrides config.MaxOpenConns unless the database is
// in memory.
func Open(_ context.Context, config Config, poolSize int) (*Store, error) {
	if poolSize > 0 {
		config.MaxOpenConns = poolSize
	}
	config.ApplyDefaults()

	if !config.InMemory() {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(gsqlite.Open(config.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)

	return &Store{db: db, sqlDB: sqlDB, config: config}, nil
}

// DB returns the GORM handle.
func (s *Store) DB() *gorm.DB { return s.db }

// Config returns the effective configuration, including the applied pool size.
func (s *Store) Config() Config { return s.config }

// Ping verifies a connection can be used.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping: %w", err)
	}
	return nil
}

// Close closes the underlying connections.
func (s *Store) Close() error {
	return s.sqlDB.Close()
}
