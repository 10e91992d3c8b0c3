// Package stats derives aggregate counts and deadline views from a collection.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/colonyops/techtrack/internal/core/tech"
)

// Summary holds the aggregate counts for a collection.
type Summary struct {
	Total      int                 `json:"total"`
	ByStatus   map[tech.Status]int `json:"byStatus"`
	Percent    int                 `json:"completionPercent"`
	Categories map[string]int      `json:"categories"`
}

// Completed returns the number of completed items.
func (s Summary) Completed() int { return s.ByStatus[tech.StatusCompleted] }

// InProgress returns the number of in-progress items.
func (s Summary) InProgress() int { return s.ByStatus[tech.StatusInProgress] }

// NotStarted returns the number of not-started items.
func (s Summary) NotStarted() int { return s.ByStatus[tech.StatusNotStarted] }

// CategoryPercent returns the rounded share of items in category.
func (s Summary) CategoryPercent(category string) int {
	return percent(s.Categories[category], s.Total)
}

// CategoryNames returns category names sorted by count, then name.
func (s Summary) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for name := range s.Categories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := s.Categories[names[i]], s.Categories[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	return names
}

// Summarize counts items by status and category and computes the
// completion percentage, which is 0 for an empty collection.
func Summarize(items []tech.Item) Summary {
	s := Summary{
		Total:      len(items),
		ByStatus:   make(map[tech.Status]int, len(tech.Statuses)),
		Categories: make(map[string]int),
	}
	for _, st := range tech.Statuses {
		s.ByStatus[st] = 0
	}

	for _, it := range items {
		s.ByStatus[it.Status]++

		cat := strings.TrimSpace(it.Category)
		if cat == "" {
			cat = tech.DefaultCategory
		}
		s.Categories[cat]++
	}

	s.Percent = percent(s.Completed(), s.Total)
	return s
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
