package dynamo

import "time"

// Config holds configuration for a DynamoDB store.
type Config struct {
	// Region is the AWS region.
	// Default: "us-east-1"
	Region string `mapstructure:"region"`

	// Profile selects a shared config profile. Ignored when static credentials are set.
	Profile string `mapstructure:"profile"`

	// Endpoint overrides the service endpoint, e.g. DynamoDB Local.
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`

	// AccessKeyID and SecretAccessKey set static credentials.
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`

	// TablePrefix is prepended to every table name passed to the store.
	TablePrefix string `mapstructure:"table_prefix"`

	// MaxRetries is the number of retries after the first attempt.
	// Default: 3
	// Max: 10
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0,lte=10"`

	// Timeout bounds each HTTP request.
	// Default: 10s
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Region:     "us-east-1",
		MaxRetries: 3,
		Timeout:    10 * time.Second,
	}
}

// Default implements registry.Config.
func (Config) Default() Config { return DefaultConfig() }

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.MaxRetries > 10 {
		c.MaxRetries = 10
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}
