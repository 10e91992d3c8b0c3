package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/colonyops/techtrack/internal/core/stats"
	"github.com/colonyops/techtrack/internal/core/styles"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/colonyops/techtrack/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type StatsCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	jsonOutput bool
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags, app *tracker.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Show learning progress",
		UsageText: "techtrack stats [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	items := cmd.app.Repo.List()
	summary := stats.Summarize(items)

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, summary)
	}

	p := printer.Ctx(ctx)
	p.Header("Progress")
	p.Printf("%s %d%%  (%d of %d completed)\n\n", progressBar(summary.Percent, 30), summary.Percent, summary.Completed(), summary.Total)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "%s\t%d\n", styles.StatusCompletedStyle.Render("completed"), summary.Completed())
	_, _ = fmt.Fprintf(tw, "%s\t%d\n", styles.StatusInProgressStyle.Render("in progress"), summary.InProgress())
	_, _ = fmt.Fprintf(tw, "%s\t%d\n", styles.StatusNotStartedStyle.Render("not started"), summary.NotStarted())
	_ = tw.Flush()

	if len(summary.Categories) == 0 {
		return nil
	}

	p.Println()
	p.Header("Categories")
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range summary.CategoryNames() {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d%%\n", name, summary.Categories[name], summary.CategoryPercent(name))
	}
	_ = tw.Flush()

	today := cmd.app.Today()
	if overdue := stats.Overdue(items, today); len(overdue) > 0 {
		p.Println()
		p.Warnf("%d overdue deadline%s, see 'techtrack deadline list'", len(overdue), plural(len(overdue), "", "s"))
	}
	return nil
}
