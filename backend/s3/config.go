package s3

import "time"

// Config holds configuration for an S3 bucket store.
type Config struct {
	Bucket   string `mapstructure:"bucket" validate:"required"`
	Region   string `mapstructure:"region"`   // Default: "us-east-1"
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`

	// KeyPrefix is prepended to every object key.
	KeyPrefix string `mapstructure:"key_prefix"`

	// ForcePathStyle addresses the bucket in the path, as MinIO and localstack require.
	// Enabled implicitly when Endpoint is set.
	ForcePathStyle bool `mapstructure:"force_path_style"`

	// Profile selects a shared config profile. Static credentials take precedence.
	Profile         string `mapstructure:"profile"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`

	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0,lte=10"` // Default: 3
	Timeout    time.Duration `mapstructure:"timeout"`                             // Default: 30s
}

// DefaultConfig returns defaults for everything but the bucket.
func DefaultConfig() Config {
	return Config{
		Region:     "us-east-1",
		MaxRetries: 3,
		Timeout:    30 * time.Second,
	}
}

// Default implements registry.Config.
func (Config) Default() Config { return DefaultConfig() }

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
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
		c.Timeout = 30 * time.Second
	}
	if c.Endpoint != "" {
		c.ForcePathStyle = true
	}
}
