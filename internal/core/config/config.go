// Package config loads the techtrack YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the root configuration.
type Config struct {
	Storage       StorageConfig       `yaml:"storage"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Search        SearchConfig        `yaml:"search"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Deadlines     DeadlinesConfig     `yaml:"deadlines"`
	DataDir       string              `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects the durable key-value backend.
type StorageConfig struct {
	Backend string `yaml:"backend"` // file | sqlite
}

// CatalogConfig sets the simulated latency of each remote catalog call.
type CatalogConfig struct {
	FetchLatency     time.Duration `yaml:"fetch_latency"`
	AddLatency       time.Duration `yaml:"add_latency"`
	ResourcesLatency time.Duration `yaml:"resources_latency"`
	SearchLatency    time.Duration `yaml:"search_latency"`
}

// SearchConfig configures search-as-you-type.
type SearchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// NotificationsConfig configures the notification bus.
type NotificationsConfig struct {
	Duration   time.Duration `yaml:"duration"`
	MaxVisible int           `yaml:"max_visible"`
	AutoClose  *bool         `yaml:"auto_close"`
}

// DeadlinesConfig configures deadline views.
type DeadlinesConfig struct {
	UpcomingWindowDays int `yaml:"upcoming_window_days"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	autoClose := true
	return Config{
		Storage: StorageConfig{Backend: BackendFile},
		Catalog: CatalogConfig{
			FetchLatency:     time.Second,
			AddLatency:       500 * time.Millisecond,
			ResourcesLatency: 700 * time.Millisecond,
			SearchLatency:    300 * time.Millisecond,
		},
		Search: SearchConfig{Debounce: 500 * time.Millisecond},
		Notifications: NotificationsConfig{
			Duration:   6 * time.Second,
			MaxVisible: 5,
			AutoClose:  &autoClose,
		},
		Deadlines: DeadlinesConfig{UpcomingWindowDays: 7},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Catalog.FetchLatency == 0 {
		c.Catalog.FetchLatency = defaults.Catalog.FetchLatency
	}
	if c.Catalog.AddLatency == 0 {
		c.Catalog.AddLatency = defaults.Catalog.AddLatency
	}
	if c.Catalog.ResourcesLatency == 0 {
		c.Catalog.ResourcesLatency = defaults.Catalog.ResourcesLatency
	}
	if c.Catalog.SearchLatency == 0 {
		c.Catalog.SearchLatency = defaults.Catalog.SearchLatency
	}
	if c.Search.Debounce == 0 {
		c.Search.Debounce = defaults.Search.Debounce
	}
	if c.Notifications.Duration == 0 {
		c.Notifications.Duration = defaults.Notifications.Duration
	}
	if c.Notifications.MaxVisible == 0 {
		c.Notifications.MaxVisible = defaults.Notifications.MaxVisible
	}
	if c.Notifications.AutoClose == nil {
		c.Notifications.AutoClose = defaults.Notifications.AutoClose
	}
	if c.Deadlines.UpcomingWindowDays == 0 {
		c.Deadlines.UpcomingWindowDays = defaults.Deadlines.UpcomingWindowDays
	}
}

// AutoCloseNotifications reports whether notifications expire on their own.
func (c *Config) AutoCloseNotifications() bool {
	return c.Notifications.AutoClose == nil || *c.Notifications.AutoClose
}
