package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/colonyops/techtrack/internal/core/styles"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/colonyops/techtrack/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type SettingsCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	jsonOutput bool
}

// NewSettingsCmd creates a new settings command
func NewSettingsCmd(flags *Flags, app *tracker.App) *SettingsCmd {
	return &SettingsCmd{flags: flags, app: app}
}

// Register adds the settings command to the application
func (cmd *SettingsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "settings",
		Usage: "View and change preferences",
		Description: `Preferences are stored alongside your data.

  darkMode       use the dark color theme
  notifications  print outcome messages
  autoSave       save after every change (off: save once on exit)
  language       interface language code
  useApi         prefer the remote catalog`,
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show current settings",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "output as JSON", Destination: &cmd.jsonOutput},
				},
				Action: cmd.runShow,
			},
			{
				Name:      "set",
				Usage:     "Change one setting",
				UsageText: "techtrack settings set <key> <value>",
				Action:    cmd.runSet,
			},
			{
				Name:   "reset",
				Usage:  "Restore default settings",
				Action: cmd.runReset,
			},
		},
	})
	return app
}

func (cmd *SettingsCmd) runShow(ctx context.Context, c *cli.Command) error {
	s := cmd.app.Settings.Get(ctx)
	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, s)
	}

	tw := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	for _, key := range tracker.SettingKeys {
		v, _ := s.Value(key)
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", styles.MutedStyle.Render(key), v)
	}
	return tw.Flush()
}

func (cmd *SettingsCmd) runSet(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("usage: techtrack settings set <key> <value>")
	}

	key := c.Args().Get(0)
	s, err := cmd.app.Settings.Set(ctx, key, c.Args().Get(1))
	if err != nil {
		return err
	}
	cmd.apply(ctx, s)

	v, _ := s.Value(key)
	printer.Ctx(ctx).Successf("%s = %s", key, v)
	return nil
}

func (cmd *SettingsCmd) runReset(ctx context.Context, c *cli.Command) error {
	cmd.apply(ctx, cmd.app.Settings.Reset(ctx))
	printer.Ctx(ctx).Successf("Settings restored to defaults")
	return nil
}

func (cmd *SettingsCmd) apply(ctx context.Context, s tracker.Settings) {
	cmd.app.ApplySettings(ctx, s)
	styles.UseTheme(styles.ThemeFor(s.DarkMode))
}
