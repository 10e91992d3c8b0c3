package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("storage.backend", c.Storage.Backend, knownBackend),
		c.validateDurations(),
		c.validateCounts(),
	)
}

func (c *Config) validateDurations() error {
	var errs criterio.FieldErrorsBuilder
	for field, d := range map[string]time.Duration{
		"catalog.fetch_latency":     c.Catalog.FetchLatency,
		"catalog.add_latency":       c.Catalog.AddLatency,
		"catalog.resources_latency": c.Catalog.ResourcesLatency,
		"catalog.search_latency":    c.Catalog.SearchLatency,
		"search.debounce":           c.Search.Debounce,
		"notifications.duration":    c.Notifications.Duration,
	} {
		if d < 0 {
			errs = errs.Append(field, fmt.Errorf("must not be negative, got %s", d))
		}
	}
	return errs.ToError()
}

func (c *Config) validateCounts() error {
	var errs criterio.FieldErrorsBuilder
	if c.Notifications.MaxVisible < 1 {
		errs = errs.Append("notifications.max_visible", fmt.Errorf("must be at least 1"))
	}
	if c.Deadlines.UpcomingWindowDays < 0 {
		errs = errs.Append("deadlines.upcoming_window_days", fmt.Errorf("must not be negative"))
	}
	return errs.ToError()
}

func knownBackend(backend string) error {
	switch backend {
	case BackendFile, BackendSQLite:
		return nil
	}
	return fmt.Errorf("unknown backend %q: use %s or %s", backend, BackendFile, BackendSQLite)
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
