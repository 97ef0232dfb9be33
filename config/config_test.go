package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/dbkit/backend/badger"
	"github.com/jacentio/dbkit/backend/dynamo"
	"github.com/jacentio/dbkit/backend/postgres"
	"github.com/jacentio/dbkit/backend/s3"
	"github.com/jacentio/dbkit/backend/sqlite"
	"github.com/jacentio/dbkit/config"
	"github.com/jacentio/dbkit/registry"
)

const fullConfig = `
logging:
  level: debug
  format: json
stores:
  primary:
    type: postgres
    pool_size: 10
    postgres:
      host: 127.0.0.1
      port: 1
      database: app
      user: app
      connect_timeout: 500ms
  cache:
    type: badger
    badger:
      in_memory: true
  local:
    type: sqlite
  events:
    type: dynamodb
    dynamodb:
      endpoint: http://127.0.0.1:1
      access_key_id: test
      secret_access_key: test
      table_prefix: dev-
      max_retries: 0
  assets:
    type: s3
    pool_size: 4
    s3:
      bucket: assets
      endpoint: http://127.0.0.1:1
      access_key_id: test
      secret_access_key: test
      max_retries: 0
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dbkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, []string{"assets", "cache", "events", "local", "primary"}, cfg.StoreNames())
	assert.Equal(t, config.TypePostgres, cfg.Stores["primary"].Type)
	assert.Equal(t, 10, cfg.Stores["primary"].PoolSize)
	assert.Equal(t, "127.0.0.1", cfg.Stores["primary"].Postgres["host"])
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Empty(t, cfg.Stores)
}

func TestLoad_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dbkit"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dbkit", "config.yaml"), []byte("stores:\n  local:\n    type: sqlite\n"), 0o600))

	assert.Equal(t, filepath.Join(dir, "dbkit", "config.yaml"), config.GetDefaultConfigPath())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"local"}, cfg.StoreNames())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DBKIT_LOGGING_LEVEL", "warn")

	cfg, err := config.Load(writeConfig(t, "stores: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.Logging.Level)
}

func TestLoad_EnvOverrideWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DBKIT_LOGGING_LEVEL", "DEBUG")
	t.Setenv("DBKIT_LOGGING_FORMAT", "json")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NotNil(t, cfg.Stores)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"unknown type", "stores:\n  x:\n    type: mongo\n", "oneof"},
		{"missing type", "stores:\n  x:\n    pool_size: 3\n", "required"},
		{"negative pool size", "stores:\n  x:\n    type: sqlite\n    pool_size: -1\n", "gte"},
		{"bad log format", "logging:\n  format: xml\n", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestBuild(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	var logs bytes.Buffer
	reg, err := config.Build(context.Background(), cfg, config.NewLogger(cfg.Logging, &logs))
	require.NoError(t, err)
	defer reg.Close()

	assert.Equal(t, 5, reg.Len())

	pg, err := registry.Require(reg, postgres.ID("primary"))
	require.NoError(t, err)
	assert.Equal(t, int32(10), pg.Config().MaxConns)
	assert.Equal(t, 500*time.Millisecond, pg.Config().ConnectTimeout)
	assert.Equal(t, int32(10), pg.Store().Pool().Config().MaxConns)

	n, ok := reg.PoolSize(postgres.ID("primary"))
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	ev, ok := registry.Lookup(reg, dynamo.ID("events"))
	require.True(t, ok)
	assert.Equal(t, "dev-orders", ev.Store().Table("orders"))
	assert.Equal(t, 0, ev.Config().MaxRetries)

	assets, ok := registry.Lookup(reg, s3.ID("assets"))
	require.True(t, ok)
	assert.Equal(t, "assets", assets.Store().Bucket())
	assert.True(t, assets.Config().ForcePathStyle)

	_, ok = registry.Lookup(reg, badger.ID("cache"))
	assert.True(t, ok)
	_, ok = reg.PoolSize(badger.ID("cache"))
	assert.False(t, ok)

	local, ok := registry.Lookup(reg, sqlite.ID("local"))
	require.True(t, ok)
	assert.Equal(t, ":memory:", local.Config().Path)

	// The name exists but holds a different store type.
	_, err = registry.Require(reg, postgres.ID("cache"))
	var missing *registry.MissingStoreError
	require.ErrorAs(t, err, &missing)
	assert.True(t, missing.Mismatch())

	assert.Contains(t, logs.String(), `"msg":"Registry ready"`)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"unknown key", "stores:\n  local:\n    type: sqlite\n    sqlite:\n      paht: /tmp/x.db\n", "paht"},
		{"postgres without database", "stores:\n  db:\n    type: postgres\n    postgres:\n      user: app\n", "Database"},
		{"s3 without bucket", "stores:\n  b:\n    type: s3\n", "Bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(writeConfig(t, tt.content))
			require.NoError(t, err)

			_, err = config.Build(context.Background(), cfg, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestBuild_BadgerWithoutSectionIsInMemory(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "stores:\n  kv:\n    type: badger\n"))
	require.NoError(t, err)

	reg, err := config.Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer reg.Close()

	kv, err := registry.Require(reg, badger.ID("kv"))
	require.NoError(t, err)
	assert.True(t, kv.Config().InMemory)
	assert.NoError(t, kv.Store().Ping(context.Background()))
}

func TestBuild_ClosesOpenedStoresOnFailure(t *testing.T) {
	dir := t.TempDir()
	content := "stores:\n" +
		"  a:\n    type: badger\n    badger:\n      dir: " + filepath.Join(dir, "kv") + "\n" +
		"  b:\n    type: s3\n"
	cfg, err := config.Load(writeConfig(t, content))
	require.NoError(t, err)

	_, err = config.Build(context.Background(), cfg, nil)
	require.Error(t, err)

	// The badger directory lock is released, so the database can be reopened.
	s, err := badger.Open(context.Background(), badger.Config{Dir: filepath.Join(dir, "kv")}, 0)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestBuild_NilConfig(t *testing.T) {
	_, err := config.Build(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestDescribeAndPing(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	reg, err := config.Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer reg.Close()

	infos := config.Describe(reg, cfg)
	require.Len(t, infos, 5)
	assert.Equal(t, config.StoreInfo{Name: "assets", Type: config.TypeS3, PoolSize: 4, Registered: true}, infos[0])
	assert.Equal(t, config.StoreInfo{Name: "cache", Type: config.TypeBadger, Registered: true}, infos[1])

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status := map[string]bool{}
	for _, h := range config.Ping(ctx, reg, cfg) {
		status[h.Name] = h.OK()
	}
	assert.Equal(t, map[string]bool{
		"assets":  false,
		"cache":   true,
		"events":  false,
		"local":   true,
		"primary": false,
	}, status)
}

func TestPing_UnregisteredStore(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Stores["ghost"] = config.StoreConfig{Type: config.TypeSQLite}

	results := config.Ping(context.Background(), registry.New(nil, nil, nil), cfg)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, registry.ErrMissingStore)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := config.NewLogger(config.LoggingConfig{Level: "WARN", Format: "text"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "msg=shown") && strings.Contains(out, "k=v"))
}
