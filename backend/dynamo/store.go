// Package dynamo provides a DynamoDB store handle for the registry.
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/dbkit/internal/awsutil"
	"github.com/jacentio/dbkit/registry"
)

// Default identifies the conventional DynamoDB store.
var Default = ID("dynamodb")

// ID returns the identifier of a DynamoDB store named name.
func ID(name string) registry.Identifier[*Store, Config] {
	return registry.NewIdentifier[*Store, Config](name)
}

// Store wraps a DynamoDB client with its configuration.
type Store struct {
	client *dynamodb.Client
	config Config
}

// New creates a Store around an existing client.
func New(client *dynamodb.Client, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// Open creates a client from config. A positive poolSize caps concurrent HTTP
// connections to the endpoint. No request is sent until the store is used.
func Open(ctx context.Context, config Config, poolSize int) (*Store, error) {
	config.validate()

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

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
		}
	})
	return &Store{client: client, config: config}, nil
}

// Client returns the underlying DynamoDB client.
func (s *Store) Client() *dynamodb.Client { return s.client }

// Config returns the configuration the store was opened with.
func (s *Store) Config() Config { return s.config }

// Table returns the physical table name for name.
func (s *Store) Table(name string) string { return s.config.TablePrefix + name }

// Ping checks that the endpoint answers and the credentials are accepted.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(1)})
	if err != nil {
		return fmt.Errorf("dynamodb ping: %w", err)
	}
	return nil
}

// Put marshals item and writes it to table.
func (s *Store) Put(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Table(table)),
		Item:      av,
	})
	return err
}

// Get reads the item identified by key from table into out.
// It returns ErrNotFound if the item does not exist.
func (s *Store) Get(ctx context.Context, table string, key any, out any) error {
	keyAttr, err := attributevalue.MarshalMap(key)
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Table(table)),
		Key:       keyAttr,
	})
	if err != nil {
		return err
	}
	if result.Item == nil {
		return ErrNotFound
	}
	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return fmt.Errorf("unmarshal item: %w", err)
	}
	return nil
}
