// Package dynamo implements the registry store against the production
// DynamoDB table. The table lives in another account; when a role ARN is
// configured, requests run under short-lived STS assume-role credentials.
package dynamo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"gcdashboard/internal/regstore/core"
	"gcdashboard/internal/wire"
)

// Store implements core.Store on a single DynamoDB table.
type Store struct {
	client *dynamodb.Client
	table  string
}

// Config holds explicit construction parameters. No globals: the table name
// and role ARN are injected here by the caller.
type Config struct {
	Table    string
	Region   string // default us-east-1
	RoleARN  string // optional cross-account role to assume
	Endpoint string // optional; custom endpoint for local DynamoDB
}

// Environment variables:
//   GCDASH_DYNAMO_TABLE=<table> (required)
//   GCDASH_DYNAMO_REGION=<region> (default us-east-1)
//   GCDASH_DYNAMO_ROLE_ARN=<arn> (optional)
//   GCDASH_DYNAMO_ENDPOINT=<url> (optional, for local DynamoDB)

// New creates a DynamoDB registry store from Config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Table == "" {
		return nil, fmt.Errorf("dynamo table required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	if cfg.RoleARN != "" {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(awsCfg), cfg.RoleARN, func(o *stscreds.AssumeRoleOptions) {
			o.RoleSessionName = "gcdashboard"
			o.Duration = 15 * time.Minute
		})
		awsCfg.Credentials = aws.NewCredentialsCache(provider)
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Store{client: client, table: cfg.Table}, nil
}

// OpenFromEnv constructs a DynamoDB store from process environment.
func OpenFromEnv(ctx context.Context) (*Store, error) {
	table := os.Getenv("GCDASH_DYNAMO_TABLE")
	if table == "" {
		return nil, fmt.Errorf("GCDASH_DYNAMO_TABLE required for dynamo driver")
	}
	cfg := Config{
		Table:    table,
		Region:   os.Getenv("GCDASH_DYNAMO_REGION"),
		RoleARN:  os.Getenv("GCDASH_DYNAMO_ROLE_ARN"),
		Endpoint: os.Getenv("GCDASH_DYNAMO_ENDPOINT"),
	}
	return New(ctx, cfg)
}

func (s *Store) Scan(ctx context.Context, limit int) ([]wire.Item, error) {
	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:            &s.table,
		Limit:                aws.Int32(int32(limit)),
		ProjectionExpression: aws.String(strings.Join(core.ScanProjection, ",")),
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.table, err)
	}
	items := make([]wire.Item, 0, len(out.Items))
	for _, av := range out.Items {
		items = append(items, fromAttributeMap(av))
	}
	return items, nil
}

func (s *Store) BatchGet(ctx context.Context, keys []string) ([]wire.Item, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	requestKeys := make([]map[string]types.AttributeValue, 0, len(keys))
	for _, k := range keys {
		requestKeys = append(requestKeys, map[string]types.AttributeValue{
			core.KeyAttribute: &types.AttributeValueMemberS{Value: k},
		})
	}
	out, err := s.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
		RequestItems: map[string]types.KeysAndAttributes{
			s.table: {Keys: requestKeys},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("batch get %s: %w", s.table, err)
	}
	items := make([]wire.Item, 0, len(keys))
	for _, av := range out.Responses[s.table] {
		items = append(items, fromAttributeMap(av))
	}
	return items, nil
}

func (s *Store) Put(ctx context.Context, item wire.Item) error {
	if _, err := core.Key(item); err != nil {
		return err
	}
	av, err := toAttributeMap(item)
	if err != nil {
		return err
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      av,
	}); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}
