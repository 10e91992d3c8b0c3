// Package db opens the SQLite database used by the sqlite storage backend.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the data directory.
const FileName = "techtrack.db"

// OpenOptions tunes the connection pool and startup retry.
type OpenOptions struct {
	MaxOpenConns int
	MaxIdleConns int
	BusyTimeout  time.Duration
	MaxRetries   int
	InitialWait  time.Duration
}

// DefaultOpenOptions returns options suited to a single local CLI process.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		BusyTimeout:  5 * time.Second,
		MaxRetries:   5,
		InitialWait:  100 * time.Millisecond,
	}
}

// DB wraps a SQL connection pool with migrations applied.
type DB struct {
	conn *sql.DB
}

// Open opens (creating if needed) the database in dataDir and applies all
// pending migrations.
func Open(dataDir string, opts OpenOptions) (*DB, error) {
	dbPath := filepath.Join(dataDir, FileName)

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", dbPath, opts.BusyTimeout.Milliseconds())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxIdleConns)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn}

	ctx := context.Background()
	if err := db.pingWithRetry(ctx, opts); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := migrateUp(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn exposes the underlying pool for stores issuing their own queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// pingWithRetry pings with exponential backoff.
func (db *DB) pingWithRetry(ctx context.Context, opts OpenOptions) error {
	wait := opts.InitialWait
	var lastErr error
	for i := 0; i < opts.MaxRetries; i++ {
		if lastErr = db.conn.PingContext(ctx); lastErr == nil {
			return nil
		}

		if i < opts.MaxRetries-1 {
			time.Sleep(wait)
			wait *= 2
		}
	}

	return fmt.Errorf("ping failed after %d attempts: %w", opts.MaxRetries, lastErr)
}
