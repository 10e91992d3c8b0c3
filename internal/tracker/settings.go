package tracker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/colonyops/techtrack/internal/core/kv"
	"github.com/colonyops/techtrack/internal/core/persist"
	"github.com/rs/zerolog"
)

// KeySettings is the storage key for user settings.
const KeySettings = "app-settings"

// Setting keys accepted by SettingsService.Set. They match the JSON names.
const (
	SettingDarkMode      = "darkMode"
	SettingNotifications = "notifications"
	SettingAutoSave      = "autoSave"
	SettingLanguage      = "language"
	SettingUseAPI        = "useApi"
)

// SettingKeys lists every settable key in display order.
var SettingKeys = []string{SettingDarkMode, SettingNotifications, SettingAutoSave, SettingLanguage, SettingUseAPI}

// Settings are the user preferences stored under KeySettings.
type Settings struct {
	DarkMode      bool   `json:"darkMode"`
	Notifications bool   `json:"notifications"`
	AutoSave      bool   `json:"autoSave"`
	Language      string `json:"language"`
	UseAPI        bool   `json:"useApi"`
}

// DefaultSettings returns the settings used before anything is stored.
func DefaultSettings() Settings {
	return Settings{
		Notifications: true,
		AutoSave:      true,
		Language:      "ru",
	}
}

// Value returns the setting under key formatted for display.
func (s Settings) Value(key string) (string, error) {
	switch key {
	case SettingDarkMode:
		return strconv.FormatBool(s.DarkMode), nil
	case SettingNotifications:
		return strconv.FormatBool(s.Notifications), nil
	case SettingAutoSave:
		return strconv.FormatBool(s.AutoSave), nil
	case SettingLanguage:
		return s.Language, nil
	case SettingUseAPI:
		return strconv.FormatBool(s.UseAPI), nil
	}
	return "", unknownSetting(key)
}

// SettingsService loads and saves Settings.
type SettingsService struct {
	mu      sync.Mutex
	slot    *persist.Slot[Settings]
	current Settings
	loaded  bool
}

// NewSettingsService returns a service persisting to store.
func NewSettingsService(store kv.KV, log zerolog.Logger) *SettingsService {
	return &SettingsService{
		slot: persist.NewSlot[Settings](store, KeySettings, log.With().Str("cmp", "settings").Logger()),
	}
}

// Get returns the stored settings, with defaults for any missing field.
func (s *SettingsService) Get(ctx context.Context) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.current = s.slot.Load(ctx, DefaultSettings())
		s.loaded = true
	}
	return s.current
}

// Set parses value for key and saves the updated settings.
func (s *SettingsService) Set(ctx context.Context, key, value string) (Settings, error) {
	cur := s.Get(ctx)

	var err error
	switch key {
	case SettingDarkMode:
		cur.DarkMode, err = parseBool(key, value)
	case SettingNotifications:
		cur.Notifications, err = parseBool(key, value)
	case SettingAutoSave:
		cur.AutoSave, err = parseBool(key, value)
	case SettingUseAPI:
		cur.UseAPI, err = parseBool(key, value)
	case SettingLanguage:
		value = strings.TrimSpace(value)
		if value == "" {
			err = fmt.Errorf("%s: must not be empty", key)
		}
		cur.Language = value
	default:
		err = unknownSetting(key)
	}
	if err != nil {
		return Settings{}, err
	}

	s.Update(ctx, cur)
	return cur, nil
}

// Update replaces and saves the settings.
func (s *SettingsService) Update(ctx context.Context, v Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = v
	s.loaded = true
	s.slot.Save(ctx, v)
}

// Reset restores and saves the defaults.
func (s *SettingsService) Reset(ctx context.Context) Settings {
	def := DefaultSettings()
	s.Update(ctx, def)
	return def
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, value)
	}
	return b, nil
}

func unknownSetting(key string) error {
	return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(SettingKeys, ", "))
}
