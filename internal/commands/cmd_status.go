package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/urfave/cli/v3"
)

type StatusCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewStatusCmd creates a new status command
func NewStatusCmd(flags *Flags, app *tracker.App) *StatusCmd {
	return &StatusCmd{flags: flags, app: app}
}

// Register adds the status command to the application
func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "status",
		Usage: "Change technology status",
		Description: `Moves technologies through not-started, in-progress and completed.

Use 'techtrack status cycle <id>' to advance one step, wrapping from
completed back to not-started. Use 'techtrack status set <status> <id>...'
to set one status on several technologies at once.`,
		Commands: []*cli.Command{
			cmd.cycleCmd(),
			cmd.setCmd(),
		},
	})
	return app
}

func (cmd *StatusCmd) cycleCmd() *cli.Command {
	return &cli.Command{
		Name:      "cycle",
		Usage:     "Advance status one step",
		UsageText: "techtrack status cycle <id>...",
		Action:    cmd.runCycle,
	}
}

func (cmd *StatusCmd) setCmd() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set the status of one or more technologies",
		UsageText: "techtrack status set <status> <id>...",
		Action:    cmd.runSet,
	}
}

func (cmd *StatusCmd) runCycle(ctx context.Context, c *cli.Command) error {
	ids := parseIDs(c.Args().Slice())
	if len(ids) == 0 {
		return fmt.Errorf("at least one id is required")
	}

	p := printer.Ctx(ctx)
	for _, id := range ids {
		it, ok := cmd.app.Repo.CycleStatus(ctx, id)
		if !ok {
			p.Warnf("technology %q not found", id)
			continue
		}
		p.Successf("%s is now %s", it.Title, it.Status)
	}
	return nil
}

func (cmd *StatusCmd) runSet(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("usage: techtrack status set <status> <id>...")
	}

	status, err := tech.ParseStatus(args[0])
	if err != nil {
		return err
	}

	ids := parseIDs(args[1:])
	n, err := cmd.app.Repo.BulkSetStatus(ctx, ids, status)
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	if skipped := distinct(ids) - n; skipped > 0 {
		p.Warnf("%d unknown id(s) skipped", skipped)
	}
	p.Successf("Updated %d technolog%s to %s", n, plural(n, "y", "ies"), status)
	return nil
}

func distinct(ids []tech.ID) int {
	seen := make(map[tech.ID]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return len(seen)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// joinArgs joins every positional argument after skip into one string.
func joinArgs(c *cli.Command, skip int) string {
	args := c.Args().Slice()
	if len(args) <= skip {
		return ""
	}
	return strings.Join(args[skip:], " ")
}
