// Package postgres implements the registry store on Postgres, mirroring the
// SQLite driver's single-table JSON layout for deployments that already run
// a shared database.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"gcdashboard/internal/regstore/core"
	"gcdashboard/internal/wire"
)

var _ core.Store = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/gcdashboard?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store persists registry items in one Postgres table.
type Store struct {
	db *sql.DB
}

// New opens a Postgres-backed store using the provided DSN (falls back to
// defaultDSN) and ensures the registry table exists.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS registry_items (
		instance_id TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create registry table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Scan(ctx context.Context, limit int) ([]wire.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM registry_items ORDER BY instance_id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []wire.Item
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var item wire.Item
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		out = append(out, core.ProjectScan(item))
	}
	return out, rows.Err()
}

func (s *Store) BatchGet(ctx context.Context, keys []string) ([]wire.Item, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM registry_items WHERE instance_id = ANY($1)`, keys)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []wire.Item
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var item wire.Item
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) Put(ctx context.Context, item wire.Item) error {
	key, err := core.Key(item)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO registry_items(instance_id,payload) VALUES($1,$2)
		 ON CONFLICT(instance_id) DO UPDATE SET payload=excluded.payload`, key, payload); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }
