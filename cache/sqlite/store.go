// Package sqlite provides a SQLite-backed cache store for sharing plan
// results across processes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wanderlab/voyago/cache"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS plan_cache (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	expires_at_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_plan_cache_expires ON plan_cache (expires_at_ms);
`

// Store is a SQLite-backed cache.Store.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ cache.Store = (*Store)(nil)

// Open opens a SQLite store at the provided path, creating the cache table
// if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.sqlDB.Close()
}

// Get implements cache.Store. Expired rows read as misses and are removed
// opportunistically.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	var expiresAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT value, expires_at_ms FROM plan_cache WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	if s.now().UTC().UnixMilli() > expiresAt {
		_, _ = s.sqlDB.ExecContext(ctx, `DELETE FROM plan_cache WHERE key = ?`, key)
		return nil, false, nil
	}
	return value, true, nil
}

// Put implements cache.Store. The upsert replaces the whole row atomically.
func (s *Store) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiresAt := s.now().UTC().Add(ttl).UnixMilli()
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO plan_cache (key, value, expires_at_ms) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at_ms = excluded.expires_at_ms`,
		key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}
