// Package regstore selects and wraps the registry store drivers. Packages
// above the store depend on the core contract through the aliases here; only
// this package wires concrete drivers.
package regstore

import (
	"context"
	"fmt"
	"os"

	"gcdashboard/internal/regstore/core"
	"gcdashboard/internal/regstore/dynamo"
	"gcdashboard/internal/regstore/memory"
	"gcdashboard/internal/regstore/postgres"
	"gcdashboard/internal/regstore/sqlite"
)

// Store is the registry storage contract.
type Store = core.Store

// Driver names a store implementation.
type Driver = core.Driver

const (
	DriverDynamo   = core.DriverDynamo
	DriverPostgres = core.DriverPostgres
	DriverSQLite   = core.DriverSQLite
	DriverMemory   = core.DriverMemory
)

// NewMemory returns an empty in-memory store (tests, local dev).
func NewMemory() Store { return memory.New() }

// Open selects a Store implementation using environment variables.
//
//	GCDASH_REGISTRY_DRIVER: dynamo|postgres|sqlite|memory (default memory)
//	GCDASH_POSTGRES_DSN: DSN when driver=postgres
//	GCDASH_SQLITE_PATH: database path when driver=sqlite (default gcdashboard.db)
//	(DynamoDB variables documented in dynamo/store.go)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("GCDASH_REGISTRY_DRIVER")
	if driver == "" {
		driver = string(DriverMemory)
	}
	switch Driver(driver) {
	case DriverDynamo:
		return dynamo.OpenFromEnv(ctx)
	case DriverPostgres:
		return postgres.New(ctx, os.Getenv("GCDASH_POSTGRES_DSN"))
	case DriverSQLite:
		return sqlite.New(ctx, os.Getenv("GCDASH_SQLITE_PATH"))
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown registry driver %s", driver)
	}
}
