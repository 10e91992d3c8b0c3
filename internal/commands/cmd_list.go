package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/techtrack/internal/core/filter"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/colonyops/techtrack/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type ListCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	status     string
	query      string
	category   string
	jsonOutput bool
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags, app *tracker.App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tracked technologies",
		UsageText: "techtrack list [--status S] [--query Q] [--category GLOB] [--json]",
		Description: `Displays the collection in insertion order.

--status keeps one status (or "all"). --query matches title, description
or notes, ignoring case. --category takes a glob such as "front*".`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "all, not-started, in-progress or completed",
				Value:       string(filter.All),
				Destination: &cmd.status,
			},
			&cli.StringFlag{
				Name:        "query",
				Aliases:     []string{"q"},
				Usage:       "case-insensitive text search",
				Destination: &cmd.query,
			},
			&cli.StringFlag{
				Name:        "category",
				Usage:       "category glob pattern",
				Destination: &cmd.category,
			},
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

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	status, err := filter.ParseStatusFilter(cmd.status)
	if err != nil {
		return err
	}

	items := filter.Visible(cmd.app.Repo.List(), status, cmd.query)
	if cmd.category != "" {
		items, err = filter.ByCategory(items, cmd.category)
		if err != nil {
			return err
		}
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, items)
	}

	if len(items) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No technologies found")
		return nil
	}

	renderItems(out, items, cmd.app.Today())
	return nil
}
