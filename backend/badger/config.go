package badger

// Config holds configuration for an embedded BadgerDB store.
type Config struct {
	// Dir is the data directory. Empty opens an in-memory database.
	Dir string `mapstructure:"dir"`

	// InMemory keeps all data in memory; nothing is written to disk.
	InMemory bool `mapstructure:"in_memory"`

	// SyncWrites fsyncs every write.
	SyncWrites bool `mapstructure:"sync_writes"`

	// ReadOnly opens an existing database without write access.
	ReadOnly bool `mapstructure:"read_only"`

	// ValueLogFileSize is the maximum size of a value log file in bytes.
	// Default: 64 MiB
	ValueLogFileSize int64 `mapstructure:"value_log_file_size"`

	// Logging enables badger's internal logger.
	Logging bool `mapstructure:"logging"`
}

// DefaultConfig returns the default configuration. Its empty Dir opens an
// in-memory database.
func DefaultConfig() Config {
	return Config{
		ValueLogFileSize: 64 << 20,
	}
}

// Default implements registry.Config.
func (Config) Default() Config { return DefaultConfig() }

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.ValueLogFileSize <= 0 {
		c.ValueLogFileSize = 64 << 20
	}
	if c.Dir == "" {
		c.InMemory = true
	}
	if c.InMemory {
		c.Dir = ""
		c.ReadOnly = false
	}
}
