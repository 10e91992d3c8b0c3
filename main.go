package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/techtrack/internal/commands"
	"github.com/colonyops/techtrack/internal/core/config"
	"github.com/colonyops/techtrack/internal/core/logging"
	corenotify "github.com/colonyops/techtrack/internal/core/notify"
	"github.com/colonyops/techtrack/internal/core/styles"
	"github.com/colonyops/techtrack/internal/data/stores"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/colonyops/techtrack/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() falls back
	// to runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		logCloser  func()
		storeClose func() error
		busCancel  context.CancelFunc
		trackerApp = &tracker.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "techtrack",
		Usage:     "Track your progress learning technologies",
		UsageText: "techtrack [global options] command [command options]",
		Description: `techtrack keeps a personal list of technologies you are learning.

Move each one through not-started, in-progress and completed, attach notes,
resources and deadlines, and review your progress with 'techtrack stats'.
Everything is saved locally in the data directory.

Run 'techtrack list' to see your collection.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TECHTRACK_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs go to stderr when unset)",
				Sources:     cli.EnvVars("TECHTRACK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TECHTRACK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TECHTRACK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			store, closeStore, err := stores.Open(cfg.Storage.Backend, cfg.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("open store: %w", err)
			}
			storeClose = closeStore

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*trackerApp = *tracker.NewApp(ctx, cfg, store, log.Logger)

			settings := trackerApp.Settings.Get(ctx)
			styles.UseTheme(styles.ThemeFor(settings.DarkMode))

			p := printer.New(c.Root().Writer, c.Root().ErrWriter)
			trackerApp.Bus.Subscribe(func(n corenotify.Notification) {
				p.Notification(n)
			})

			busCtx, cancel := context.WithCancel(ctx)
			busCancel = cancel
			go trackerApp.Bus.Run(busCtx)

			ctx = printer.WithPrinter(ctx, p)
			if len(c.Args().Slice()) > 0 {
				ctx = logging.WithCommand(ctx, c.Args().First())
			}
			if session := trackerApp.Auth.Current(ctx); session.IsAuthenticated {
				ctx = logging.WithUser(ctx, session.CurrentUser)
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if busCancel != nil {
				busCancel()
			}

			// Changes stay in memory while autosave is off.
			if trackerApp.Repo != nil && trackerApp.Repo.Dirty() {
				trackerApp.Repo.Flush(ctx)
			}

			if storeClose != nil {
				if err := storeClose(); err != nil {
					log.Error().Err(err).Msg("failed to close store")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewAddCmd(flags, trackerApp).Register(app)
	app = commands.NewListCmd(flags, trackerApp).Register(app)
	app = commands.NewShowCmd(flags, trackerApp).Register(app)
	app = commands.NewStatusCmd(flags, trackerApp).Register(app)
	app = commands.NewNotesCmd(flags, trackerApp).Register(app)
	app = commands.NewDeadlineCmd(flags, trackerApp).Register(app)
	app = commands.NewStatsCmd(flags, trackerApp).Register(app)
	app = commands.NewQuickCmd(flags, trackerApp).Register(app)
	app = commands.NewExportCmd(flags, trackerApp).Register(app)
	app = commands.NewImportCmd(flags, trackerApp).Register(app)
	app = commands.NewCatalogCmd(flags, trackerApp).Register(app)
	app = commands.NewSettingsCmd(flags, trackerApp).Register(app)
	app = commands.NewAuthCmd(flags, trackerApp).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		printer.New(os.Stdout, os.Stderr).Error(err)
		exitCode = 1
	}

	stop()
	os.Exit(exitCode)
}
