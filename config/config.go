// Package config loads store definitions from a file and builds the registry
// from them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// StoreType selects the backend a store is opened with.
type StoreType string

const (
	TypePostgres StoreType = "postgres"
	TypeDynamoDB StoreType = "dynamodb"
	TypeS3       StoreType = "s3"
	TypeBadger   StoreType = "badger"
	TypeSQLite   StoreType = "sqlite"
)

// Config is the file-level configuration.
//
// Store names are case-insensitive and normalized to lower case, since viper
// folds map keys.
type Config struct {
	Logging LoggingConfig          `mapstructure:"logging"`
	Stores  map[string]StoreConfig `mapstructure:"stores" validate:"dive"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=DEBUG INFO WARN ERROR"` // Default: INFO
	Format string `mapstructure:"format" validate:"oneof=text json"`           // Default: text
}

// StoreConfig defines one named store. Only the section matching Type is read;
// it is decoded over the backend's defaults.
type StoreConfig struct {
	Type StoreType `mapstructure:"type" validate:"required,oneof=postgres dynamodb s3 badger sqlite"`

	// PoolSize is the connection-pool-size hint. 0 leaves the backend default.
	PoolSize int `mapstructure:"pool_size" validate:"gte=0"`

	Postgres map[string]any `mapstructure:"postgres"`
	DynamoDB map[string]any `mapstructure:"dynamodb"`
	S3       map[string]any `mapstructure:"s3"`
	Badger   map[string]any `mapstructure:"badger"`
	SQLite   map[string]any `mapstructure:"sqlite"`
}

// StoreNames returns the configured store names in lexicographic order.
func (c *Config) StoreNames() []string {
	names := make([]string, 0, len(c.Stores))
	for name := range c.Stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (DBKIT_*)
//  2. Configuration file
//  3. Default values
//
// An empty configPath reads $XDG_CONFIG_HOME/dbkit/config.yaml and falls back
// to environment variables and defaults when that file does not exist. An
// explicit configPath must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file: environment variables and defaults still apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Example: DBKIT_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("DBKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.format", "text")

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(GetConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// GetConfigDir returns the configuration directory.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or the current directory
// if the home directory cannot be determined.
func GetConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dbkit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "dbkit")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}
