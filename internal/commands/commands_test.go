package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/colonyops/techtrack/internal/catalog"
	"github.com/colonyops/techtrack/internal/core/config"
	"github.com/colonyops/techtrack/internal/core/kv/kvtest"
	corenotify "github.com/colonyops/techtrack/internal/core/notify"
	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/colonyops/techtrack/internal/printer"
	"github.com/colonyops/techtrack/internal/tracker"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

type harness struct {
	app   *tracker.App
	store *kvtest.Memory
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Catalog = config.CatalogConfig{
		FetchLatency:     time.Millisecond,
		AddLatency:       time.Millisecond,
		ResourcesLatency: time.Millisecond,
		SearchLatency:    time.Millisecond,
	}

	store := kvtest.NewMemory()
	app := tracker.NewApp(context.Background(), &cfg, store, zerolog.Nop(),
		tracker.WithClock(func() time.Time { return testNow }),
	)
	return &harness{app: app, store: store}
}

// run executes one command line against the harness app and returns what
// was written to stdout and stderr.
func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := &cli.Command{Name: "techtrack", Writer: &out, ErrWriter: &errOut}

	flags := &Flags{}
	root = NewAddCmd(flags, h.app).Register(root)
	root = NewListCmd(flags, h.app).Register(root)
	root = NewShowCmd(flags, h.app).Register(root)
	root = NewStatusCmd(flags, h.app).Register(root)
	root = NewNotesCmd(flags, h.app).Register(root)
	root = NewDeadlineCmd(flags, h.app).Register(root)
	root = NewStatsCmd(flags, h.app).Register(root)
	root = NewQuickCmd(flags, h.app).Register(root)
	root = NewExportCmd(flags, h.app).Register(root)
	root = NewImportCmd(flags, h.app).Register(root)
	root = NewCatalogCmd(flags, h.app).Register(root)
	root = NewSettingsCmd(flags, h.app).Register(root)
	root = NewAuthCmd(flags, h.app).Register(root)

	ctx := printer.WithPrinter(context.Background(), printer.New(&out, &errOut))
	err := root.Run(ctx, append([]string{"techtrack"}, args...))
	return out.String(), errOut.String(), err
}

func (h *harness) item(t *testing.T, id tech.ID) tech.Item {
	t.Helper()
	it, ok := h.app.Repo.Get(id)
	require.True(t, ok, "item %q missing", id)
	return it
}

func TestList_filters(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "list", "--status", "completed", "--json")
	require.NoError(t, err)

	var items []tech.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "React Components", items[0].Title)
	assert.Equal(t, "TypeScript with React", items[1].Title)

	out, _, err = h.run(t, "ls", "--query", "ROUTER")
	require.NoError(t, err)
	assert.Contains(t, out, "React Router")
	assert.NotContains(t, out, "JSX Syntax")
}

func TestList_empty_result(t *testing.T) {
	h := newHarness(t)

	out, errOut, err := h.run(t, "list", "--category", "backend*")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No technologies found")
}

func TestList_rejects_unknown_status(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "list", "--status", "paused")
	require.Error(t, err)
}

func TestAdd_with_flags(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "add",
		"--title", "Rust",
		"--description", "Systems programming language",
		"--category", "backend",
		"--deadline", "2025-07-01",
		"-r", "https://doc.rust-lang.org", "-r", " ",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "id ")

	items := h.app.Repo.List()
	added := items[len(items)-1]
	assert.Equal(t, "Rust", added.Title)
	assert.Equal(t, tech.StatusNotStarted, added.Status)
	assert.Equal(t, "backend", added.Category)
	assert.Equal(t, "2025-07-01", added.Deadline.String())
	assert.Equal(t, []string{"https://doc.rust-lang.org"}, added.Resources)
}

func TestAdd_reports_every_invalid_field(t *testing.T) {
	h := newHarness(t)
	before := len(h.app.Repo.List())

	_, _, err := h.run(t, "add", "--title", "R", "--description", "short", "--deadline", "2025-01-01")
	require.Error(t, err)

	var ve *tech.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := make([]string, 0, len(ve.Fields))
	for _, fe := range ve.Fields {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "deadline")
	assert.Len(t, h.app.Repo.List(), before)
}

func TestShow(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "show", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "React Router")
	assert.Contains(t, out, "in-progress")

	_, _, err = h.run(t, "show", "missing")
	require.Error(t, err)
}

func TestStatus_cycle_and_set(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "status", "cycle", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "State Management is now in-progress")
	assert.Equal(t, tech.StatusInProgress, h.item(t, "3").Status)

	_, errOut, err := h.run(t, "status", "cycle", "nope")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"nope" not found`)

	out, errOut, err = h.run(t, "status", "set", "completed", "3", "4", "4", "ghost")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 2 technologies to completed")
	assert.Contains(t, errOut, "1 unknown id(s) skipped")
	assert.Equal(t, tech.StatusCompleted, h.item(t, "4").Status)

	_, _, err = h.run(t, "status", "set", "paused", "3")
	require.Error(t, err)
}

func TestNotes_set_and_clear(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "notes", "2", "finished", "the", "tutorial")
	require.NoError(t, err)
	assert.Equal(t, "finished the tutorial", h.item(t, "2").Notes)

	_, _, err = h.run(t, "notes", "--clear", "2")
	require.NoError(t, err)
	assert.Empty(t, h.item(t, "2").Notes)

	_, _, err = h.run(t, "notes", "2")
	require.Error(t, err)
}

func TestDeadline_set_clear_list(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "deadline", "set", "2025-06-18", "3", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "on 2 technologies")

	out, _, err = h.run(t, "deadline", "list", "--json")
	require.NoError(t, err)
	var report deadlineReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Upcoming, 2)

	_, _, err = h.run(t, "deadline", "set", "2025-06-01", "3")
	require.Error(t, err)

	out, _, err = h.run(t, "deadline", "clear", "3", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 2 deadlines")
	assert.True(t, h.item(t, "3").Deadline.IsZero())
}

func TestStats_json(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "stats", "--json")
	require.NoError(t, err)

	var got struct {
		Total   int `json:"total"`
		Percent int `json:"completionPercent"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 8, got.Total)
	assert.Equal(t, 25, got.Percent)
}

func TestQuick_complete_and_reset(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "quick", "complete-all", "--yes")
	require.NoError(t, err)
	for _, it := range h.app.Repo.List() {
		assert.Equal(t, tech.StatusCompleted, it.Status)
	}

	_, _, err = h.run(t, "quick", "reset-all", "-y")
	require.NoError(t, err)
	for _, it := range h.app.Repo.List() {
		assert.Equal(t, tech.StatusNotStarted, it.Status)
	}

	_, _, err = h.run(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Equal(t, tech.Seed(testNow), h.app.Repo.List())
}

func TestExport_then_import(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	_, _, err := h.run(t, "export", dir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "technology-tracker-export-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	doc := `{"technologies":[{"id":1,"title":"Go","description":"Concurrency and tooling","status":"in-progress"}]}`
	path := filepath.Join(dir, "import.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, _, err = h.run(t, "import", "--yes", path)
	require.NoError(t, err)

	items := h.app.Repo.List()
	require.Len(t, items, 1)
	assert.Equal(t, tech.ID("1"), items[0].ID)
	assert.Equal(t, tech.DefaultCategory, items[0].Category)

	_, _, err = h.run(t, "import", "--yes", matches[0])
	require.NoError(t, err)
	assert.Len(t, h.app.Repo.List(), 8)
}

func TestImport_invalid_document_keeps_collection(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items":[]}`), 0o644))

	_, _, err := h.run(t, "import", "--yes", path)
	require.Error(t, err)
	assert.Len(t, h.app.Repo.List(), 8)
}

func TestSettings_set_and_reset(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "settings", "set", "notifications", "false")
	require.NoError(t, err)
	assert.Contains(t, out, "notifications = false")
	assert.False(t, h.app.Settings.Get(context.Background()).Notifications)

	_, _, err = h.run(t, "settings", "set", "colour", "blue")
	require.Error(t, err)

	_, _, err = h.run(t, "settings", "reset")
	require.NoError(t, err)
	assert.Equal(t, tracker.DefaultSettings(), h.app.Settings.Get(context.Background()))
}

func TestAuth_login_whoami_logout(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run(t, "login", "ada")
	require.NoError(t, err)

	out, _, err := h.run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "ada\n", out)

	_, _, err = h.run(t, "logout")
	require.NoError(t, err)
	assert.False(t, h.app.Auth.Current(context.Background()).IsAuthenticated)
}

func TestParseIDs(t *testing.T) {
	assert.Equal(t, []tech.ID{"1", "abc"}, parseIDs([]string{" 1 ", "", "abc"}))
	assert.Empty(t, parseIDs(nil))
}

func TestDeadlineLabel(t *testing.T) {
	mk := func(date string, status tech.Status) tech.Item {
		d, err := tech.ParseDate(date)
		require.NoError(t, err)
		return tech.Item{Status: status, Deadline: d}
	}

	assert.Equal(t, "-", deadlineLabel(tech.Item{}, testNow))
	assert.Contains(t, deadlineLabel(mk("2025-06-18", tech.StatusNotStarted), testNow), "in 3d")
	assert.Contains(t, deadlineLabel(mk("2025-06-15", tech.StatusInProgress), testNow), "today")
	assert.Contains(t, deadlineLabel(mk("2025-06-10", tech.StatusNotStarted), testNow), "5d overdue")
	assert.Contains(t, deadlineLabel(mk("2025-06-10", tech.StatusCompleted), testNow), "done")
}

func TestCatalog_import_skips_known_titles(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "catalog", "import")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3, skipped 0")
	assert.Len(t, h.app.Repo.List(), 11)

	out, _, err = h.run(t, "catalog", "import")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0, skipped 3")
	assert.Len(t, h.app.Repo.List(), 11)
}

func TestCatalog_search_and_resources(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run(t, "catalog", "search", "node")
	require.NoError(t, err)
	assert.Contains(t, out, "Node.js")
	assert.NotContains(t, out, "Typescript")

	out, _, err = h.run(t, "catalog", "resources", "React")
	require.NoError(t, err)
	assert.Contains(t, out, "Resources for React")

	out, _, err = h.run(t, "catalog", "resources", "Cobol")
	require.NoError(t, err)
	assert.Contains(t, out, "No known resources for Cobol")
}

func TestFeedLines(t *testing.T) {
	var got []string
	input := func(_ context.Context, q string) { got = append(got, q) }

	err := feedLines(context.Background(), strings.NewReader("re\n\n  rea \nreact\n"), input)
	require.NoError(t, err)
	assert.Equal(t, []string{"re", "rea", "react"}, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got = nil
	require.NoError(t, feedLines(ctx, strings.NewReader("a\nb\n"), input))
	assert.Empty(t, got)
}

func TestCatalog_fetch_retries_through_notification(t *testing.T) {
	h := newHarness(t)

	calls := 0
	h.app.Catalog = catalog.New(catalog.SourceFunc(func(ctx context.Context) ([]tech.Item, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection reset")
		}
		return catalog.StaticSource{}.List(ctx)
	}), catalog.Latencies{Fetch: time.Millisecond}, zerolog.Nop())

	var seen []string
	h.app.Bus.Subscribe(func(n corenotify.Notification) {
		seen = append(seen, n.Message+" ["+n.ActionLabel()+"]")
	})

	out, _, err := h.run(t, "catalog", "fetch", "--retries", "1", "--json")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, seen, 1)
	assert.Contains(t, seen[0], "connection reset")
	assert.Contains(t, seen[0], "[retry]")
	assert.Empty(t, h.app.Bus.List())

	var items []tech.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Len(t, items, 3)
}

func TestCatalog_fetch_gives_up_without_retries(t *testing.T) {
	h := newHarness(t)
	h.app.Catalog = catalog.New(catalog.SourceFunc(func(context.Context) ([]tech.Item, error) {
		return nil, errors.New("offline")
	}), catalog.Latencies{Fetch: time.Millisecond}, zerolog.Nop())

	_, _, err := h.run(t, "catalog", "fetch")
	require.Error(t, err)

	var fe *catalog.FetchError
	assert.ErrorAs(t, err, &fe)
}
