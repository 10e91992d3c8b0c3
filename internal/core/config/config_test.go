package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_missing_file_uses_defaults(t *testing.T) {
	dataDir := t.TempDir()
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), dataDir)
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, want.Catalog, cfg.Catalog)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 5, cfg.Notifications.MaxVisible)
	assert.True(t, cfg.AutoCloseNotifications())
	assert.Equal(t, 7, cfg.Deadlines.UpcomingWindowDays)
}

func TestLoad_empty_path(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
}

func TestLoad_partial_file_keeps_other_defaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: sqlite
catalog:
  fetch_latency: 50ms
notifications:
  auto_close: false
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 50*time.Millisecond, cfg.Catalog.FetchLatency)
	assert.Equal(t, 500*time.Millisecond, cfg.Catalog.AddLatency)
	assert.False(t, cfg.AutoCloseNotifications())
	assert.Equal(t, 6*time.Second, cfg.Notifications.Duration)
}

func TestLoad_invalid_yaml(t *testing.T) {
	path := writeConfig(t, "storage: [")
	_, err := Load(path, t.TempDir())
	assert.ErrorContains(t, err, "parse config file")
}

func TestLoad_unknown_backend(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: redis\n")
	_, err := Load(path, t.TempDir())
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "storage.backend", fieldErrs[0].Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"negative latency", func(c *Config) { c.Catalog.FetchLatency = -time.Second }, "catalog.fetch_latency"},
		{"negative debounce", func(c *Config) { c.Search.Debounce = -1 }, "search.debounce"},
		{"zero max visible", func(c *Config) { c.Notifications.MaxVisible = 0 }, "notifications.max_visible"},
		{"negative window", func(c *Config) { c.Deadlines.UpcomingWindowDays = -2 }, "deadlines.upcoming_window_days"},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
		})
	}
}

func TestValidate_data_dir_is_file(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	cfg := DefaultConfig()
	cfg.DataDir = file
	assert.Error(t, cfg.Validate())
}
