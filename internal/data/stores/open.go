package stores

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/techtrack/internal/core/kv"
	"github.com/colonyops/techtrack/internal/core/logging"
	"github.com/colonyops/techtrack/internal/data/db"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open returns the KV store for backend rooted in dataDir along with a close
// function. A corrupted SQLite database is moved aside and recreated once.
func Open(backend, dataDir string) (kv.KV, func() error, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	switch backend {
	case BackendFile, "":
		return NewDiskKV(filepath.Join(dataDir, "kv")), func() error { return nil }, nil
	case BackendSQLite:
		database, err := db.Open(dataDir, db.DefaultOpenOptions())
		if err != nil && IsCorruptionError(err) {
			backup, recErr := RecoverFromCorruption(dataDir)
			if recErr != nil {
				return nil, nil, fmt.Errorf("recover database: %w", recErr)
			}
			logging.Component("stores").Warn().Str("backup", backup).Msg("database was corrupted, starting fresh")
			database, err = db.Open(dataDir, db.DefaultOpenOptions())
		}
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteKV(database), database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
