// Package postgres provides a PostgreSQL connection-pool handle for the registry.
package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jacentio/dbkit/registry"
)

// Default identifies the conventional PostgreSQL store.
var Default = ID("postgres")

// ID returns the identifier of a PostgreSQL store named name.
func ID(name string) registry.Identifier[*Store, Config] {
	return registry.NewIdentifier[*Store, Config](name)
}

// Store wraps a pgx connection pool.
type Store struct {
	pool   *pgxpool.Pool
	config Config
}

// Open creates a connection pool for config. A positive poolSize overrides
// config.MaxConns and is capped at math.MaxInt32. Connections are established
// on first use unless MinConns > 0.
func Open(ctx context.Context, config Config, poolSize int) (*Store, error) {
	config.ApplyDefaults()
	if poolSize > 0 {
		config.MaxConns = int32(min(poolSize, math.MaxInt32))
		if config.MinConns > config.MaxConns {
			config.MinConns = config.MaxConns
		}
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	poolConfig.MaxConns = config.MaxConns
	poolConfig.MinConns = config.MinConns
	poolConfig.MaxConnLifetime = config.MaxConnLifetime
	poolConfig.MaxConnIdleTime = config.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = config.HealthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = config.ConnectTimeout

	if config.QueryTimeout > 0 {
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%dms", config.QueryTimeout.Milliseconds())
	}
	if config.SimpleProtocol {
		poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	return &Store{pool: pool, config: config}, nil
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// Config returns the effective configuration, including the applied pool size.
func (s *Store) Config() Config { return s.config }

// Ping acquires a connection and checks the server responds.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	return nil
}

// Close closes all pool connections.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
