package commands

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/urfave/cli/v3"
)

type QuickCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	yes bool
}

// NewQuickCmd creates a new quick command
func NewQuickCmd(flags *Flags, app *tracker.App) *QuickCmd {
	return &QuickCmd{flags: flags, app: app}
}

// Register adds the quick and reset commands to the application
func (cmd *QuickCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:  "quick",
			Usage: "Bulk shortcuts",
			Commands: []*cli.Command{
				{
					Name:   "complete-all",
					Usage:  "Mark every technology completed",
					Flags:  []cli.Flag{cmd.yesFlag()},
					Action: cmd.runCompleteAll,
				},
				{
					Name:   "reset-all",
					Usage:  "Move every technology back to not-started",
					Flags:  []cli.Flag{cmd.yesFlag()},
					Action: cmd.runResetAll,
				},
				{
					Name:   "random",
					Usage:  "Start a random not-started technology",
					Action: cmd.runRandom,
				},
			},
		},
		&cli.Command{
			Name:        "reset",
			Usage:       "Replace the collection with the starter set",
			UsageText:   "techtrack reset [--yes]",
			Description: "Discards every technology and restores the built-in React learning path.",
			Flags:       []cli.Flag{cmd.yesFlag()},
			Action:      cmd.runReset,
		},
	)

	return app
}

func (cmd *QuickCmd) yesFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "yes",
		Aliases:     []string{"y"},
		Usage:       "skip the confirmation prompt",
		Destination: &cmd.yes,
	}
}

func (cmd *QuickCmd) confirmed(ctx context.Context, title string) (bool, error) {
	ok, err := confirm(title, "This changes every technology.", cmd.yes)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err == nil && !ok {
		printer.Ctx(ctx).Infof("Cancelled")
	}
	return ok, err
}

func (cmd *QuickCmd) runCompleteAll(ctx context.Context, c *cli.Command) error {
	ok, err := cmd.confirmed(ctx, "Mark everything completed?")
	if !ok || err != nil {
		return err
	}
	cmd.app.Repo.MarkAllCompleted(ctx)
	return nil
}

func (cmd *QuickCmd) runResetAll(ctx context.Context, c *cli.Command) error {
	ok, err := cmd.confirmed(ctx, "Reset all progress?")
	if !ok || err != nil {
		return err
	}
	cmd.app.Repo.ResetAll(ctx)
	return nil
}

func (cmd *QuickCmd) runRandom(ctx context.Context, c *cli.Command) error {
	it, err := cmd.app.Repo.PickRandom(ctx)
	if errors.Is(err, tracker.ErrNothingToPick) {
		return nil
	}
	if err != nil {
		return err
	}

	printer.Ctx(ctx).Infof("id %s", it.ID)
	return nil
}

func (cmd *QuickCmd) runReset(ctx context.Context, c *cli.Command) error {
	ok, err := cmd.confirmed(ctx, "Reset to the starter set?")
	if !ok || err != nil {
		return err
	}
	return cmd.app.Repo.Reset(ctx)
}
