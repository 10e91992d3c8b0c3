package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/colonyops/techtrack/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type ExportCmd struct {
	flags *Flags
	app   *tracker.App
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *tracker.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export the collection as JSON",
		UsageText: "techtrack export [path|dir]",
		Description: `Writes an export document holding every technology.

Without an argument the document is written to stdout. When the argument
is a directory, the file is named technology-tracker-export-YYYY-MM-DD.json.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	doc := cmd.app.Repo.ExportSnapshot()

	target := c.Args().First()
	if target == "" || target == "-" {
		return iojson.WriteWith(c.Root().Writer, doc)
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, tech.ExportFilename(doc.ExportedAt))
	}

	if err := iojson.WriteFile(target, doc); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	printer.Ctx(ctx).Successf("Exported %d technologies to %s", doc.TechnologiesCount, target)
	return nil
}

type ImportCmd struct {
	flags *Flags
	app   *tracker.App

	input iojson.Input

	// flags
	yes bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *tracker.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Replace the collection from an export document",
		UsageText: "techtrack import [-f file | file] [--yes]",
		Description: `Reads an export document and replaces the whole collection with it.

Every item needs a title, description and valid status; missing optional
fields are defaulted. If any item is invalid nothing is changed.
Reads stdin when no file is given.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	cmd.input.SetPath(c.Args().First())

	data, err := cmd.input.Bytes()
	if err != nil {
		return err
	}

	// stdin already carries the document, so a prompt cannot read answers.
	skip := cmd.yes || cmd.input.Path() == ""
	current := len(cmd.app.Repo.List())
	ok, err := confirm("Replace collection?", fmt.Sprintf("All %d current technologies will be replaced.", current), skip)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}
	if !ok {
		printer.Ctx(ctx).Infof("Import cancelled")
		return nil
	}

	if _, err := cmd.app.Repo.Import(ctx, data); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}
