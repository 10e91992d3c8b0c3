package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/colonyops/techtrack/internal/catalog"
	"github.com/colonyops/techtrack/internal/core/notify"
	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/search"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/colonyops/techtrack/pkg/iojson"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type CatalogCmd struct {
	flags *Flags
	app   *tracker.App

	// flags
	retries     int
	jsonOutput  bool
	title       string
	description string
	category    string
	difficulty  string
	resources   []string
}

// NewCatalogCmd creates a new catalog command
func NewCatalogCmd(flags *Flags, app *tracker.App) *CatalogCmd {
	return &CatalogCmd{flags: flags, app: app}
}

// Register adds the catalog command to the application
func (cmd *CatalogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "catalog",
		Usage: "Browse the remote technology catalog",
		Description: `Talks to the simulated remote catalog. Every call waits a configured
latency and can be interrupted with Ctrl-C.

The catalog keeps its own list; use 'techtrack catalog import' to copy
its technologies into your collection.`,
		Commands: []*cli.Command{
			{
				Name:      "fetch",
				Usage:     "Fetch the catalog",
				UsageText: "techtrack catalog fetch [--retries N] [--json]",
				Flags: []cli.Flag{
					cmd.retriesFlag(),
					&cli.BoolFlag{Name: "json", Usage: "output as JSON", Destination: &cmd.jsonOutput},
				},
				Action: cmd.runFetch,
			},
			{
				Name:      "add",
				Usage:     "Submit a technology to the catalog",
				UsageText: "techtrack catalog add --title T --description D [options]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true, Destination: &cmd.title},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Required: true, Destination: &cmd.description},
					&cli.StringFlag{Name: "category", Destination: &cmd.category},
					&cli.StringFlag{Name: "difficulty", Destination: &cmd.difficulty},
					&cli.StringSliceFlag{Name: "resource", Aliases: []string{"r"}, Destination: &cmd.resources},
				},
				Action: cmd.runAdd,
			},
			{
				Name:      "resources",
				Usage:     "Look up learning resources for a technology",
				UsageText: "techtrack catalog resources <name>",
				Action:    cmd.runResources,
			},
			{
				Name:      "search",
				Usage:     "Search the catalog as you type",
				UsageText: "techtrack catalog search [query]",
				Description: `With a query argument, runs one search. Otherwise reads queries from
stdin, one per line; only a query followed by a quiet period (search.debounce)
is sent, and a newer query cancels the one in flight.`,
				Action: cmd.runSearch,
			},
			{
				Name:      "import",
				Usage:     "Copy catalog technologies into your collection",
				UsageText: "techtrack catalog import [--retries N]",
				Flags:     []cli.Flag{cmd.retriesFlag()},
				Action:    cmd.runImport,
			},
		},
	})
	return app
}

func (cmd *CatalogCmd) retriesFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:        "retries",
		Usage:       "retry a failed fetch this many times",
		Destination: &cmd.retries,
	}
}

// fetch loads the catalog, retrying failures as the error notification's
// retry action. Aborted fetches return a nil slice and no error.
func (cmd *CatalogCmd) fetch(ctx context.Context) ([]tech.Item, error) {
	for attempt := 0; ; attempt++ {
		items, err := cmd.app.Catalog.FetchAll(ctx)
		switch {
		case err == nil:
			return items, nil
		case catalog.IsAborted(err):
			log.Debug().Err(err).Msg("catalog fetch aborted")
			return nil, nil
		case attempt >= cmd.retries:
			return nil, err
		}

		msg := fmt.Sprintf("%v (attempt %d of %d)", err, attempt+1, cmd.retries+1)
		retry := false
		id := cmd.app.Bus.Publish(msg, notify.LevelError, &notify.Action{
			Label: notify.RetryLabel,
			Run:   func() { retry = true },
		})
		if id != 0 && (!cmd.app.Bus.Trigger(id) || !retry) {
			return nil, err
		}
	}
}

func (cmd *CatalogCmd) runFetch(ctx context.Context, c *cli.Command) error {
	items, err := cmd.fetch(ctx)
	if err != nil || items == nil {
		return err
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, items)
	}
	renderItems(c.Root().Writer, items, cmd.app.Today())
	return nil
}

func (cmd *CatalogCmd) runAdd(ctx context.Context, c *cli.Command) error {
	it, err := cmd.app.Catalog.AddOne(ctx, tech.Draft{
		Title:       cmd.title,
		Description: cmd.description,
		Category:    cmd.category,
		Difficulty:  tech.Difficulty(cmd.difficulty),
		Resources:   cmd.resources,
	})
	if catalog.IsAborted(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("catalog add: %w", err)
	}

	printer.Ctx(ctx).Successf("Submitted %q to the catalog as %s", it.Title, it.ID)
	return nil
}

func (cmd *CatalogCmd) runResources(ctx context.Context, c *cli.Command) error {
	name := joinArgs(c, 0)
	if name == "" {
		return fmt.Errorf("a technology name is required")
	}

	links, err := cmd.app.Catalog.Resources(ctx, name)
	if catalog.IsAborted(err) {
		return nil
	}
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	if len(links) == 0 {
		p.Infof("No known resources for %s", name)
		return nil
	}
	p.Header("Resources for " + name)
	for _, l := range links {
		p.Printf("  %s\n", l)
	}
	return nil
}

func (cmd *CatalogCmd) runSearch(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	show := func(res search.Result[[]tech.Item]) {
		switch {
		case res.Err != nil:
			p.Errorf("search %q: %v", res.Query, res.Err)
		case len(res.Value) == 0:
			p.Infof("%q: no matches", res.Query)
		default:
			p.Header(fmt.Sprintf("%q: %d match%s", res.Query, len(res.Value), plural(len(res.Value), "", "es")))
			renderItems(c.Root().Writer, res.Value, cmd.app.Today())
		}
	}

	if query := joinArgs(c, 0); query != "" {
		items, err := cmd.app.Catalog.Search(ctx, query)
		if catalog.IsAborted(err) {
			return nil
		}
		show(search.Result[[]tech.Item]{Query: query, Value: items, Err: err})
		return nil
	}

	d := search.NewDebouncer[[]tech.Item](cmd.app.Config.Search.Debounce, cmd.app.Catalog.Search, show)
	defer d.Close()

	if err := feedLines(ctx, os.Stdin, d.Input); err != nil {
		return err
	}
	d.Settle()
	return nil
}

// feedLines passes each non-blank line of r to input until EOF.
func feedLines(ctx context.Context, r io.Reader, input func(context.Context, string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if line := strings.TrimSpace(sc.Text()); line != "" {
			input(ctx, line)
		}
	}
	return sc.Err()
}

func (cmd *CatalogCmd) runImport(ctx context.Context, c *cli.Command) error {
	items, err := cmd.fetch(ctx)
	if err != nil || items == nil {
		return err
	}

	existing := make(map[string]bool)
	for _, it := range cmd.app.Repo.List() {
		existing[strings.ToLower(it.Title)] = true
	}

	p := printer.Ctx(ctx)
	added, skipped := 0, 0
	for _, it := range items {
		if existing[strings.ToLower(it.Title)] {
			skipped++
			continue
		}

		_, err := cmd.app.Repo.Create(ctx, tech.Draft{
			Title:       it.Title,
			Description: it.Description,
			Status:      it.Status,
			Notes:       it.Notes,
			Category:    it.Category,
			Difficulty:  it.Difficulty,
			Resources:   it.Resources,
		})
		if err != nil {
			p.Warnf("skipping %q: %v", it.Title, err)
			skipped++
			continue
		}
		existing[strings.ToLower(it.Title)] = true
		added++
	}

	p.Infof("Imported %d, skipped %d", added, skipped)
	return nil
}
