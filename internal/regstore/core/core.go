// Package core defines the storage contract for the benchmark registry.
// Driver packages implement Store against DynamoDB, Postgres, SQLite, or
// process memory; everything above the store depends on this package only.
package core

import (
	"context"
	"errors"

	"gcdashboard/internal/registry"
	"gcdashboard/internal/wire"
)

// Driver names a store implementation.
type Driver string

const (
	DriverDynamo   Driver = "dynamo"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverMemory   Driver = "memory"
)

// KeyAttribute is the registry's partition key.
const KeyAttribute = registry.AttrInstanceID

// ScanProjection is the attribute subset returned by Scan. S3Uri and Stages
// are deliberately omitted from the listing view.
var ScanProjection = []string{
	registry.AttrInstanceID,
	registry.AttrCreationDate,
	registry.AttrExecStatus,
	registry.AttrSite,
	registry.AttrDescription,
}

// ErrMissingKey reports a write item without the partition key.
var ErrMissingKey = errors.New("regstore: item missing " + KeyAttribute)

// Store is the registry storage collaborator. Scan returns up to limit items
// carrying only the ScanProjection attributes; BatchGet returns full items
// (including the Stages list) for the requested keys, skipping keys with no
// item; Put writes one full item keyed by KeyAttribute.
type Store interface {
	Scan(ctx context.Context, limit int) ([]wire.Item, error)
	BatchGet(ctx context.Context, keys []string) ([]wire.Item, error)
	Put(ctx context.Context, item wire.Item) error
}

// ProjectScan reduces a full item to the scan projection. Drivers that hold
// whole items apply it in-process to keep parity with the DynamoDB
// projection expression.
func ProjectScan(item wire.Item) wire.Item {
	out := make(wire.Item, len(ScanProjection))
	for _, attr := range ScanProjection {
		if v, ok := item[attr]; ok {
			out[attr] = v
		}
	}
	return out
}

// Key extracts the partition key of a write item.
func Key(item wire.Item) (string, error) {
	k := item.String(KeyAttribute)
	if k == nil || *k == "" {
		return "", ErrMissingKey
	}
	return *k, nil
}
