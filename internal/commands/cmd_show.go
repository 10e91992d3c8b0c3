package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/techtrack/internal/core/styles"
	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/colonyops/techtrack/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type ShowCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *tracker.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show one technology in detail",
		UsageText: "techtrack show <id> [--json]",
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

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one id")
	}

	id := tech.ID(c.Args().First())
	it, ok := cmd.app.Repo.Get(id)
	if !ok {
		return fmt.Errorf("technology %q not found", id)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, it)
	}

	p := printer.Ctx(ctx)
	p.Header(it.Title)
	p.Printf("%s\n\n", it.Description)

	row := func(label, value string) {
		p.Printf("%s %s\n", styles.MutedStyle.Render(fmt.Sprintf("%-11s", label+":")), value)
	}
	row("id", string(it.ID))
	row("status", styles.StatusStyle(it.Status).Render(styles.StatusIcon(it.Status)+" "+string(it.Status)))
	row("category", it.Category)
	row("difficulty", string(it.Difficulty))
	row("deadline", deadlineLabel(it, cmd.app.Today()))
	row("created", it.CreatedAt.Local().Format("2006-01-02 15:04"))

	if len(it.Resources) > 0 {
		row("resources", strings.Join(it.Resources, "\n"+strings.Repeat(" ", 12)))
	}
	if it.Notes != "" {
		p.Printf("\n%s\n%s\n", styles.TitleStyle.Render("Notes"), it.Notes)
	}
	return nil
}
