package stats

import (
	"time"

	"github.com/colonyops/techtrack/internal/core/tech"
)

// DeadlineState classifies an item's deadline relative to today.
type DeadlineState string

const (
	DeadlineNone      DeadlineState = "none"
	DeadlineCompleted DeadlineState = "completed"
	DeadlineOverdue   DeadlineState = "overdue"
	DeadlineUrgent    DeadlineState = "urgent"
	DeadlineWarning   DeadlineState = "warning"
	DeadlineNormal    DeadlineState = "normal"
)

const (
	urgentDays  = 3
	warningDays = 7
)

// DaysUntil returns the whole days from today to deadline; negative when
// the deadline has passed. Time of day is ignored.
func DaysUntil(deadline tech.Date, today time.Time) int {
	return deadline.DaysSince(tech.DateOf(today))
}

// Classify buckets an item's deadline: urgent within 3 days, warning
// within 7, normal beyond that.
func Classify(it tech.Item, today time.Time) DeadlineState {
	switch {
	case it.Deadline.IsZero():
		return DeadlineNone
	case it.Status == tech.StatusCompleted:
		return DeadlineCompleted
	}

	days := DaysUntil(it.Deadline, today)
	switch {
	case days < 0:
		return DeadlineOverdue
	case days <= urgentDays:
		return DeadlineUrgent
	case days <= warningDays:
		return DeadlineWarning
	default:
		return DeadlineNormal
	}
}

// Overdue returns unfinished items whose deadline is strictly before today.
func Overdue(items []tech.Item, today time.Time) []tech.Item {
	d := tech.DateOf(today)
	return selectItems(items, func(it tech.Item) bool {
		return it.Deadline.Before(d)
	})
}

// Upcoming returns unfinished items whose deadline falls within
// [today, today+windowDays], both ends inclusive.
func Upcoming(items []tech.Item, today time.Time, windowDays int) []tech.Item {
	start := tech.DateOf(today)
	end := start.AddDays(windowDays)
	return selectItems(items, func(it tech.Item) bool {
		return !it.Deadline.Before(start) && !it.Deadline.After(end)
	})
}

func selectItems(items []tech.Item, keep func(tech.Item) bool) []tech.Item {
	out := []tech.Item{}
	for _, it := range items {
		if it.Deadline.IsZero() || it.Status == tech.StatusCompleted {
			continue
		}
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
