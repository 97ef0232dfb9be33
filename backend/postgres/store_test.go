package postgres_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/dbkit/backend/postgres"
)

func TestDefaultConfig(t *testing.T) {
	cfg := postgres.DefaultConfig()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, int32(10), cfg.MaxConns)
	assert.Equal(t, int32(0), cfg.MinConns)
	assert.Equal(t, time.Hour, cfg.MaxConnLifetime)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
	assert.Equal(t, cfg, postgres.Config{}.Default())
}

func TestConnectionString(t *testing.T) {
	cfg := postgres.Config{
		Host:     "db.internal",
		Port:     6543,
		Database: "app",
		User:     "svc",
		Password: "it's secret",
		SSLMode:  "require",
	}

	assert.Equal(t,
		`host=db.internal port=6543 dbname=app user=svc password='it\'s secret' sslmode=require`,
		cfg.ConnectionString())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     postgres.Config
		wantErr bool
	}{
		{"valid", postgres.Config{Host: "h", Database: "d", User: "u", MaxConns: 2}, false},
		{"no host", postgres.Config{Database: "d", User: "u"}, true},
		{"no database", postgres.Config{Host: "h", User: "u"}, true},
		{"no user", postgres.Config{Host: "h", Database: "d"}, true},
		{"min above max", postgres.Config{Host: "h", Database: "d", User: "u", MinConns: 5, MaxConns: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func unreachable() postgres.Config {
	return postgres.Config{
		Host:           "127.0.0.1",
		Port:           1,
		Database:       "app",
		User:           "app",
		ConnectTimeout: 500 * time.Millisecond,
		SimpleProtocol: true,
	}
}

func TestOpen_PoolSizeOverridesMaxConns(t *testing.T) {
	s, err := postgres.Open(context.Background(), unreachable(), 25)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, int32(25), s.Pool().Config().MaxConns)
	assert.Equal(t, int32(25), s.Config().MaxConns)
	assert.Equal(t, "30000ms", s.Pool().Config().ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, pgx.QueryExecModeSimpleProtocol, s.Pool().Config().ConnConfig.DefaultQueryExecMode)
}

func TestOpen_PoolSizeCappedAtMaxInt32(t *testing.T) {
	s, err := postgres.Open(context.Background(), unreachable(), int(^uint(0)>>1))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, int32(math.MaxInt32), s.Config().MaxConns)
	assert.Equal(t, int32(math.MaxInt32), s.Pool().Config().MaxConns)
}

func TestOpen_DefaultPoolSize(t *testing.T) {
	s, err := postgres.Open(context.Background(), unreachable(), 0)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, int32(10), s.Pool().Config().MaxConns)
}

func TestOpen_Invalid(t *testing.T) {
	_, err := postgres.Open(context.Background(), postgres.Config{Host: "h"}, 0)
	assert.Error(t, err)
}

func TestPing_Unreachable(t *testing.T) {
	s, err := postgres.Open(context.Background(), unreachable(), 1)
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, s.Ping(ctx))
}
