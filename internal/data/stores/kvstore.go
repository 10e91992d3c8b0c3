package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/techtrack/internal/core/kv"
	"github.com/colonyops/techtrack/internal/data/db"
)

// SQLiteKV implements kv.KV on the kv_store table.
type SQLiteKV struct {
	db *db.DB
}

var _ kv.KV = (*SQLiteKV)(nil)

// NewSQLiteKV creates a SQLite-backed KV store.
func NewSQLiteKV(db *db.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// Get retrieves and deserializes a value by key.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *SQLiteKV) Get(ctx context.Context, key string, dest any) error {
	var value []byte
	err := s.db.Conn().QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("kv get %q: %w", key, err)
	}

	if err := json.Unmarshal(value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

const (
	busyRetries = 3
	busyBackoff = 50 * time.Millisecond
)

// Set stores a value, keeping the original creation time on overwrite.
func (s *SQLiteKV) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	// Another process holding the write lock past busy_timeout gets a few
	// more attempts before the write is reported as failed.
	for attempt := 0; ; attempt++ {
		now := time.Now().UnixNano()
		_, err = s.db.Conn().ExecContext(ctx, `
			INSERT INTO kv_store (key, value, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, data, now, now)
		if err == nil || !IsBusyError(err) || attempt == busyRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(busyBackoff):
		}
	}
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Conn().ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *SQLiteKV) Has(ctx context.Context, key string) (bool, error) {
	var count int
	if err := s.db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store WHERE key = ?", key).Scan(&count); err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	return count > 0, nil
}

// ListKeys returns all keys in sorted order.
func (s *SQLiteKV) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.Conn().QueryContext(ctx, "SELECT key FROM kv_store ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("kv list keys scan: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
