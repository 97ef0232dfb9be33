package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mitchellh/mapstructure"

	"github.com/jacentio/dbkit/backend/badger"
	"github.com/jacentio/dbkit/backend/dynamo"
	"github.com/jacentio/dbkit/backend/postgres"
	"github.com/jacentio/dbkit/backend/s3"
	"github.com/jacentio/dbkit/backend/sqlite"
	"github.com/jacentio/dbkit/registry"
)

// backend binds a StoreType to its identifier constructor.
type backend struct {
	open func(ctx context.Context, b *registry.Builder, name string, sc StoreConfig) error
	ping func(ctx context.Context, reg *registry.Registry, name string) error
}

var backends = map[StoreType]backend{
	TypePostgres: {
		open: opener(postgres.ID, func(sc StoreConfig) map[string]any { return sc.Postgres }, postgres.Open, (*postgres.Store).Config),
		ping: pinger(postgres.ID),
	},
	TypeDynamoDB: {
		open: opener(dynamo.ID, func(sc StoreConfig) map[string]any { return sc.DynamoDB }, dynamo.Open, (*dynamo.Store).Config),
		ping: pinger(dynamo.ID),
	},
	TypeS3: {
		open: opener(s3.ID, func(sc StoreConfig) map[string]any { return sc.S3 }, s3.Open, (*s3.Store).Config),
		ping: pinger(s3.ID),
	},
	TypeBadger: {
		open: opener(badger.ID, func(sc StoreConfig) map[string]any { return sc.Badger }, badger.Open, (*badger.Store).Config),
		ping: pinger(badger.ID),
	},
	TypeSQLite: {
		open: opener(sqlite.ID, func(sc StoreConfig) map[string]any { return sc.SQLite }, sqlite.Open, (*sqlite.Store).Config),
		ping: pinger(sqlite.ID),
	},
}

// Build opens every configured store and returns the registry holding them.
//
// Stores are opened in name order. Each is registered with its effective
// configuration and, when set, its pool-size hint. If any store fails to open,
// the stores opened so far are closed and no registry is returned.
//
// Example:
//
//	cfg, _ := config.Load("dbkit.yaml")
//	reg, err := config.Build(ctx, cfg, logger)
//	if err != nil {
//	    log.Fatalf("Failed to build registry: %v", err)
//	}
//	defer reg.Close()
func Build(ctx context.Context, cfg *Config, logger *slog.Logger) (*registry.Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}

	b := registry.NewBuilder()
	for _, name := range cfg.StoreNames() {
		sc := cfg.Stores[name]
		logger.Debug("Opening store", "name", name, "type", sc.Type, "pool_size", sc.PoolSize)

		be, ok := backends[sc.Type]
		if !ok {
			closePartial(b, logger)
			return nil, fmt.Errorf("store %q: unknown store type: %q", name, sc.Type)
		}
		if err := be.open(ctx, b, name, sc); err != nil {
			closePartial(b, logger)
			return nil, fmt.Errorf("store %q: %w", name, err)
		}
		logger.Info("Registered store", "name", name, "type", sc.Type)
	}

	reg, err := b.Build()
	if err != nil {
		return nil, err
	}
	logger.Info("Registry ready", "stores", reg.Len())
	return reg, nil
}

// closePartial releases stores already added to b.
func closePartial(b *registry.Builder, logger *slog.Logger) {
	partial, err := b.Build()
	if err != nil {
		return
	}
	if err := partial.Close(); err != nil {
		logger.Warn("Failed to close stores after build error", "error", err)
	}
}

func opener[S any, C registry.Config[C]](
	id func(string) registry.Identifier[S, C],
	section func(StoreConfig) map[string]any,
	open func(context.Context, C, int) (S, error),
	effective func(S) C,
) func(context.Context, *registry.Builder, string, StoreConfig) error {
	return func(ctx context.Context, b *registry.Builder, name string, sc StoreConfig) error {
		var zero C
		cfg := zero.Default()
		if err := decodeSection(section(sc), &cfg); err != nil {
			return fmt.Errorf("invalid %s config: %w", sc.Type, err)
		}
		if err := validate.Struct(cfg); err != nil {
			return fmt.Errorf("invalid %s config: %w", sc.Type, formatValidationError(err))
		}

		store, err := open(ctx, cfg, sc.PoolSize)
		if err != nil {
			return err
		}

		key := id(name)
		if err := registry.Add(b, key, store); err != nil {
			if c, ok := any(store).(interface{ Close() error }); ok {
				_ = c.Close()
			}
			return err
		}
		if err := registry.Configure(b, key, effective(store)); err != nil {
			return err
		}
		if sc.PoolSize > 0 {
			return b.SetPoolSize(key, sc.PoolSize)
		}
		return nil
	}
}

// decodeSection decodes a backend section over the defaults already in out.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func decodeSection(input map[string]any, out any) error {
	if len(input) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
