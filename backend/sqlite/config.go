package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// Config holds configuration for a SQLite database.
type Config struct {
	// Path is the database file. ":memory:" opens a private in-memory database.
	// Default: ":memory:"
	Path string `mapstructure:"path" validate:"required"`

	// JournalMode is the SQLite journal mode.
	// Default: "WAL" for files, "MEMORY" for in-memory databases
	JournalMode string `mapstructure:"journal_mode" validate:"omitempty,oneof=DELETE TRUNCATE PERSIST MEMORY WAL OFF delete truncate persist memory wal off"`

	// BusyTimeout is how long a connection waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`

	// MaxOpenConns caps open connections. A pool-size hint overrides it for
	// file databases; in-memory databases always use a single connection.
	// Default: 4
	MaxOpenConns int `mapstructure:"max_open_conns" validate:"gte=0"`

	// MaxIdleConns caps idle connections.
	// Default: MaxOpenConns
	MaxIdleConns int `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// DefaultConfig returns a private in-memory database. JournalMode and the
// connection limits depend on Path and are resolved by ApplyDefaults.
func DefaultConfig() Config {
	return Config{
		Path:        ":memory:",
		BusyTimeout: 5 * time.Second,
	}
}

// Default implements registry.Config.
func (Config) Default() Config { return DefaultConfig() }

// InMemory reports whether the database lives only in memory.
func (c *Config) InMemory() bool {
	return c.Path == ":memory:" || strings.Contains(c.Path, "mode=memory")
}

// ApplyDefaults fills in missing configuration with default values.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = ":memory:"
	}
	if c.JournalMode == "" {
		if c.InMemory() {
			c.JournalMode = "MEMORY"
		} else {
			c.JournalMode = "WAL"
		}
	}
	c.JournalMode = strings.ToUpper(c.JournalMode)
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = 5 * time.Second
	}
	switch {
	case c.InMemory():
		// Every connection to ":memory:" sees its own database.
		c.MaxOpenConns = 1
	case c.MaxOpenConns == 0:
		c.MaxOpenConns = 4
	}
	if c.MaxIdleConns == 0 || c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = c.MaxOpenConns
	}
}

// DSN returns the glebarez/sqlite data source name with pragmas applied.
func (c *Config) DSN() string {
	sep := "?"
	if strings.Contains(c.Path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=journal_mode(%s)&_pragma=busy_timeout(%d)",
		c.Path, sep, c.JournalMode, c.BusyTimeout.Milliseconds())
}
