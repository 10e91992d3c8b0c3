package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/urfave/cli/v3"
)

type NotesCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	clear bool
}

// NewNotesCmd creates a new notes command
func NewNotesCmd(flags *Flags, app *tracker.App) *NotesCmd {
	return &NotesCmd{flags: flags, app: app}
}

// Register adds the notes command to the application
func (cmd *NotesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "notes",
		Usage:     "Replace the notes of a technology",
		UsageText: "techtrack notes <id> <text>... | techtrack notes --clear <id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "remove the notes",
				Destination: &cmd.clear,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NotesCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("an id is required")
	}

	id := tech.ID(c.Args().First())
	text := joinArgs(c, 1)
	if cmd.clear {
		text = ""
	} else if text == "" {
		return fmt.Errorf("notes text is required (use --clear to remove notes)")
	}

	if !cmd.app.Repo.SetNotes(ctx, id, text) {
		return fmt.Errorf("technology %q not found", id)
	}

	if text == "" {
		printer.Ctx(ctx).Successf("Notes cleared")
	} else {
		printer.Ctx(ctx).Successf("Notes saved")
	}
	return nil
}
