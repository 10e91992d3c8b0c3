package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/techtrack/internal/core/stats"
	"github.com/colonyops/techtrack/internal/core/styles"
	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/colonyops/techtrack/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type DeadlineCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	window     int
	jsonOutput bool
}

// NewDeadlineCmd creates a new deadline command
func NewDeadlineCmd(flags *Flags, app *tracker.App) *DeadlineCmd {
	return &DeadlineCmd{flags: flags, app: app}
}

// Register adds the deadline command to the application
func (cmd *DeadlineCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "deadline",
		Usage: "Manage learning deadlines",
		Description: `Sets, clears and reviews deadlines.

Deadlines use YYYY-MM-DD and may not be set in the past. 'deadline list'
shows overdue technologies and the ones due within the upcoming window.`,
		Commands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Set a deadline on one or more technologies",
				UsageText: "techtrack deadline set <date> <id>...",
				Action:    cmd.runSet,
			},
			{
				Name:      "clear",
				Usage:     "Remove the deadline from one or more technologies",
				UsageText: "techtrack deadline clear <id>...",
				Action:    cmd.runClear,
			},
			{
				Name:      "list",
				Usage:     "List overdue and upcoming deadlines",
				UsageText: "techtrack deadline list [--days N] [--json]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "days",
						Usage:       "upcoming window in days (defaults to config)",
						Value:       -1,
						Destination: &cmd.window,
					},
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
		},
	})
	return app
}

func (cmd *DeadlineCmd) runSet(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("usage: techtrack deadline set <date> <id>...")
	}

	date, err := tech.ParseDate(args[0])
	if err != nil {
		return tech.NewFieldError("deadline", err)
	}
	if date.IsZero() {
		return fmt.Errorf("a date is required (use 'deadline clear' to remove)")
	}

	return cmd.apply(ctx, parseIDs(args[1:]), date)
}

func (cmd *DeadlineCmd) runClear(ctx context.Context, c *cli.Command) error {
	ids := parseIDs(c.Args().Slice())
	if len(ids) == 0 {
		return fmt.Errorf("at least one id is required")
	}
	return cmd.apply(ctx, ids, tech.Date{})
}

func (cmd *DeadlineCmd) apply(ctx context.Context, ids []tech.ID, date tech.Date) error {
	n, err := cmd.app.Repo.BulkSetDeadline(ctx, ids, date)
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	if skipped := distinct(ids) - n; skipped > 0 {
		p.Warnf("%d unknown id(s) skipped", skipped)
	}
	if date.IsZero() {
		p.Successf("Cleared %d deadline%s", n, plural(n, "", "s"))
	} else {
		p.Successf("Set deadline %s on %d technolog%s", date, n, plural(n, "y", "ies"))
	}
	return nil
}

type deadlineReport struct {
	Overdue  []tech.Item `json:"overdue"`
	Upcoming []tech.Item `json:"upcoming"`
}

func (cmd *DeadlineCmd) runList(ctx context.Context, c *cli.Command) error {
	window := cmd.window
	if window < 0 {
		window = cmd.app.Config.Deadlines.UpcomingWindowDays
	}

	today := cmd.app.Today()
	items := cmd.app.Repo.List()
	report := deadlineReport{
		Overdue:  stats.Overdue(items, today),
		Upcoming: stats.Upcoming(items, today, window),
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, report)
	}

	p := printer.Ctx(ctx)
	if len(report.Overdue) == 0 && len(report.Upcoming) == 0 {
		p.Infof("No deadlines in the next %d days", window)
		return nil
	}

	if len(report.Overdue) > 0 {
		p.Header(styles.DeadlineOverdueStyle.Render(fmt.Sprintf("Overdue (%d)", len(report.Overdue))))
		renderItems(c.Root().Writer, report.Overdue, today)
		p.Println()
	}
	if len(report.Upcoming) > 0 {
		p.Header(fmt.Sprintf("Due in the next %d days (%d)", window, len(report.Upcoming)))
		renderItems(c.Root().Writer, report.Upcoming, today)
	}
	return nil
}
