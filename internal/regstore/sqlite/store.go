// Package sqlite implements the registry store on a local SQLite database.
// Items are stored as JSON payloads in a single table; the scan projection
// is applied in-process to keep parity with the production table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"gcdashboard/internal/regstore/core"
	"gcdashboard/internal/wire"
)

var _ core.Store = (*Store)(nil)

// Store persists registry items in one SQLite table.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (creating if needed) a SQLite registry store at path.
func New(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "gcdashboard.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS registry_items (
		instance_id TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create registry table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Scan(ctx context.Context, limit int) ([]wire.Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM registry_items ORDER BY instance_id LIMIT ?`, limit)
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
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM registry_items WHERE instance_id IN (`+placeholders+`)`, args...)
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
		`INSERT INTO registry_items(instance_id,payload) VALUES(?,?)
		 ON CONFLICT(instance_id) DO UPDATE SET payload=excluded.payload`, key, payload); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
