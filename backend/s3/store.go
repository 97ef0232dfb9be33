// Package s3 provides an S3 bucket handle for the registry.
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jacentio/dbkit/internal/awsutil"
	"github.com/jacentio/dbkit/registry"
)

// Default identifies the conventional object store.
var Default = ID("s3")

// ErrNoBucket is returned by Open when no bucket is configured.
var ErrNoBucket = errors.New("dbkit: s3 store requires a bucket")

// ID returns the identifier of an S3 store named name.
func ID(name string) registry.Identifier[*Store, Config] {
	return registry.NewIdentifier[*Store, Config](name)
}

// Store is an S3 client bound to one bucket and key prefix.
type Store struct {
	client *awss3.Client
	config Config
}

// Open creates an S3 client for config.Bucket. A positive poolSize caps
// concurrent HTTP connections. No request is sent until the store is used.
func Open(ctx context.Context, config Config, poolSize int) (*Store, error) {
	config.ApplyDefaults()
	if config.Bucket == "" {
		return nil, ErrNoBucket
	}

	awsCfg, err := awsutil.Load(ctx, awsutil.Options{
		Region:          config.Region,
		Profile:         config.Profile,
		AccessKeyID:     config.AccessKeyID,
		SecretAccessKey: config.SecretAccessKey,
		MaxRetries:      config.MaxRetries,
		Timeout:         config.Timeout,
	}, poolSize)
	if err != nil {
		return nil, err
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
		}
		o.UsePathStyle = config.ForcePathStyle
	})
	return &Store{client: client, config: config}, nil
}

// Client returns the underlying S3 client.
func (s *Store) Client() *awss3.Client { return s.client }

// Bucket returns the bucket name.
func (s *Store) Bucket() string { return s.config.Bucket }

// Config returns the configuration the store was opened with.
func (s *Store) Config() Config { return s.config }

// Key returns the full object key for name.
func (s *Store) Key(name string) string {
	if s.config.KeyPrefix == "" {
		return name
	}
	return strings.TrimSuffix(s.config.KeyPrefix, "/") + "/" + strings.TrimPrefix(name, "/")
}

// Ping checks that the bucket exists and is reachable.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: aws.String(s.config.Bucket)})
	if err != nil {
		return fmt.Errorf("s3 ping %q: %w", s.config.Bucket, err)
	}
	return nil
}
