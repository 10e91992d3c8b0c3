package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/colonyops/techtrack/internal/core/stats"
	"github.com/colonyops/techtrack/internal/core/styles"
	"github.com/colonyops/techtrack/internal/core/tech"
)

// parseIDs converts positional arguments to item ids.
func parseIDs(args []string) []tech.ID {
	ids := make([]tech.ID, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			ids = append(ids, tech.ID(a))
		}
	}
	return ids
}

// renderItems writes items as a table.
func renderItems(w io.Writer, items []tech.Item, today time.Time) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tCATEGORY\tDEADLINE")

	for _, it := range items {
		status := styles.StatusStyle(it.Status).Render(styles.StatusIcon(it.Status) + " " + string(it.Status))
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", it.ID, status, it.Title, it.Category, deadlineLabel(it, today))
	}

	_ = tw.Flush()
}

// deadlineLabel describes an item's deadline relative to today.
func deadlineLabel(it tech.Item, today time.Time) string {
	if it.Deadline.IsZero() {
		return "-"
	}

	state := stats.Classify(it, today)
	days := stats.DaysUntil(it.Deadline, today)

	var rel string
	switch {
	case state == stats.DeadlineCompleted:
		rel = "done"
	case days < 0:
		rel = fmt.Sprintf("%dd overdue", -days)
	case days == 0:
		rel = "today"
	default:
		rel = fmt.Sprintf("in %dd", days)
	}

	return styles.DeadlineStyle(state).Render(fmt.Sprintf("%s (%s)", it.Deadline, rel))
}

// progressBar renders a percentage as a fixed-width bar.
func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return styles.BarFilledStyle.Render(strings.Repeat("█", filled)) +
		styles.BarEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// confirm asks a yes/no question unless skip is set.
func confirm(title, description string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}

	ok := false
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
