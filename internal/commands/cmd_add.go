package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/colonyops/techtrack/internal/core/validate"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/urfave/cli/v3"
)

type AddCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	title       string
	description string
	status      string
	notes       string
	category    string
	difficulty  string
	deadline    string
	resources   []string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *tracker.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a technology to track",
		UsageText: "techtrack add [options]",
		Description: `Adds a technology to the collection.

Title must be 2 to 50 characters and the description at least 10. The
deadline (YYYY-MM-DD) may not be in the past. Every invalid field is
reported at once.

When --title is omitted, an interactive form prompts for input.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "technology title", Destination: &cmd.title},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "what you want to learn", Destination: &cmd.description},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "not-started, in-progress or completed", Destination: &cmd.status},
			&cli.StringFlag{Name: "notes", Usage: "free-form notes", Destination: &cmd.notes},
			&cli.StringFlag{Name: "category", Usage: "category (defaults to other)", Destination: &cmd.category},
			&cli.StringFlag{Name: "difficulty", Usage: "beginner, intermediate or advanced", Destination: &cmd.difficulty},
			&cli.StringFlag{Name: "deadline", Usage: "target date (YYYY-MM-DD)", Destination: &cmd.deadline},
			&cli.StringSliceFlag{Name: "resource", Aliases: []string{"r"}, Usage: "learning resource URL (repeatable)", Destination: &cmd.resources},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.title == "" {
		if err := cmd.runForm(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	draft, err := cmd.draft()
	if err != nil {
		return err
	}

	it, err := cmd.app.Repo.Create(ctx, draft)
	if err != nil {
		return fmt.Errorf("add technology: %w", err)
	}

	printer.Ctx(ctx).Infof("id %s", it.ID)
	return nil
}

func (cmd *AddCmd) draft() (tech.Draft, error) {
	deadline, err := tech.ParseDate(cmd.deadline)
	if err != nil {
		return tech.Draft{}, tech.NewFieldError("deadline", err)
	}

	return tech.Draft{
		Title:       cmd.title,
		Description: cmd.description,
		Status:      tech.Status(cmd.status),
		Notes:       cmd.notes,
		Category:    cmd.category,
		Difficulty:  tech.Difficulty(cmd.difficulty),
		Deadline:    deadline,
		Resources:   cmd.resources,
	}, nil
}

func (cmd *AddCmd) runForm() error {
	if cmd.difficulty == "" {
		cmd.difficulty = string(tech.DifficultyBeginner)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("2 to 50 characters").
				Validate(validate.Title).
				Value(&cmd.title),
			huh.NewText().
				Title("Description").
				Description("What do you want to learn?").
				Validate(validate.Description).
				Value(&cmd.description),
			huh.NewInput().
				Title("Category").
				Placeholder(tech.DefaultCategory).
				Value(&cmd.category),
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(
					huh.NewOption("Beginner", string(tech.DifficultyBeginner)),
					huh.NewOption("Intermediate", string(tech.DifficultyIntermediate)),
					huh.NewOption("Advanced", string(tech.DifficultyAdvanced)),
				).
				Value(&cmd.difficulty),
			huh.NewInput().
				Title("Deadline").
				Description("YYYY-MM-DD, leave empty for none").
				Validate(func(s string) error {
					_, err := tech.ParseDate(s)
					return err
				}).
				Value(&cmd.deadline),
		),
	).Run()
}
