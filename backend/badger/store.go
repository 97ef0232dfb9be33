// Package badger provides an embedded BadgerDB handle for the registry.
package badger

import (
	"context"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/jacentio/dbkit/registry"
)

// Default identifies the conventional embedded store.
var Default = ID("badger")

// ID returns the identifier of a Badger store named name.
func ID(name string) registry.Identifier[*Store, Config] {
	return registry.NewIdentifier[*Store, Config](name)
}

// Store wraps an open BadgerDB.
type Store struct {
	db     *badgerdb.DB
	config Config
}

// Open opens the database described by config. BadgerDB is embedded and has
// no connection pool, so poolSize is not used.
func Open(ctx context.Context, config Config, poolSize int) (*Store, error) {
	config.validate()

	opts := badgerdb.DefaultOptions(config.Dir).
		WithInMemory(config.InMemory).
		WithSyncWrites(config.SyncWrites).
		WithReadOnly(config.ReadOnly).
		WithValueLogFileSize(config.ValueLogFileSize)
	if !config.Logging {
		opts = opts.WithLogger(nil)
	}

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}
	return &Store{db: db, config: config}, nil
}

// DB returns the underlying database.
func (s *Store) DB() *badgerdb.DB { return s.db }

// Config returns the effective configuration.
func (s *Store) Config() Config { return s.config }

// Ping runs an empty read transaction.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return fmt.Errorf("badger database is closed")
	}
	return s.db.View(func(txn *badgerdb.Txn) error { return nil })
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	if s.db == nil || s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}
