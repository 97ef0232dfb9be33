// Package awsutil builds aws.Config values shared by the AWS-backed stores.
package awsutil

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Options selects region, credentials and transport limits.
type Options struct {
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	MaxRetries      int
	Timeout         time.Duration
}

// Load resolves an aws.Config. Static credentials take precedence over the
// profile; with neither, the default credential chain applies.
// A positive poolSize caps HTTP connections per host.
func Load(ctx context.Context, o Options, poolSize int) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(o.Region),
		awsconfig.WithRetryMaxAttempts(o.MaxRetries + 1),
		awsconfig.WithHTTPClient(HTTPClient(o.Timeout, poolSize)),
	}
	if o.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(o.Profile))
	}
	if o.AccessKeyID != "" && o.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// HTTPClient returns the SDK HTTP client with the given request timeout and,
// when poolSize > 0, at most poolSize connections per host.
func HTTPClient(timeout time.Duration, poolSize int) *awshttp.BuildableClient {
	c := awshttp.NewBuildableClient()
	if timeout > 0 {
		c = c.WithTimeout(timeout)
	}
	if poolSize > 0 {
		c = c.WithTransportOptions(func(t *http.Transport) {
			t.MaxConnsPerHost = poolSize
			t.MaxIdleConnsPerHost = poolSize
		})
	}
	return c
}
