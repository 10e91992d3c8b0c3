package tracker

import (
	"context"
	"time"

	"github.com/colonyops/techtrack/internal/catalog"
	"github.com/colonyops/techtrack/internal/core/config"
	"github.com/colonyops/techtrack/internal/core/kv"
	"github.com/colonyops/techtrack/internal/notify"
	"github.com/rs/zerolog"
)

// App is the central entry point for all techtrack operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Repo     *Repository
	Settings *SettingsService
	Auth     *AuthService
	Catalog  *catalog.Facade
	Bus      *notify.Bus
	Config   *config.Config
}

// NewApp wires the services over store and loads the item collection.
// Stored settings decide whether notifications are published and whether
// the repository writes through on every change.
func NewApp(ctx context.Context, cfg *config.Config, store kv.KV, log zerolog.Logger, opts ...Option) *App {
	settings := NewSettingsService(store, log)
	current := settings.Get(ctx)

	bus := notify.NewBus(notify.Options{
		MaxVisible: cfg.Notifications.MaxVisible,
		Duration:   cfg.Notifications.Duration,
		AutoClose:  cfg.AutoCloseNotifications(),
		Enabled:    current.Notifications,
	})

	repoOpts := append([]Option{WithNotifier(bus), WithAutoSave(current.AutoSave)}, opts...)
	repo := NewRepository(store, log, repoOpts...)
	repo.Load(ctx)

	return &App{
		Repo:     repo,
		Settings: settings,
		Auth:     NewAuthService(store, log),
		Catalog: catalog.New(catalog.StaticSource{}, catalog.Latencies{
			Fetch:     cfg.Catalog.FetchLatency,
			Add:       cfg.Catalog.AddLatency,
			Resources: cfg.Catalog.ResourcesLatency,
			Search:    cfg.Catalog.SearchLatency,
		}, log),
		Bus:    bus,
		Config: cfg,
	}
}

// ApplySettings pushes changed settings into the running services.
func (a *App) ApplySettings(ctx context.Context, s Settings) {
	a.Bus.SetEnabled(s.Notifications)
	a.Repo.SetAutoSave(ctx, s.AutoSave)
}

// Today returns the repository's current time.
func (a *App) Today() time.Time {
	return a.Repo.now()
}
