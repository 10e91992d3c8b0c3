package stats

import (
	"testing"

	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.Percent)
	assert.Equal(t, 0, s.Completed())
	assert.Empty(t, s.Categories)
	assert.Equal(t, 0, s.CategoryPercent("other"))
}

func TestSummarize_counts(t *testing.T) {
	items := []tech.Item{
		{Status: tech.StatusCompleted, Category: "frontend"},
		{Status: tech.StatusCompleted, Category: "frontend"},
		{Status: tech.StatusInProgress, Category: "backend"},
		{Status: tech.StatusNotStarted},
		{Status: tech.StatusNotStarted, Category: "  "},
		{Status: tech.StatusNotStarted, Category: "backend"},
	}

	s := Summarize(items)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Completed())
	assert.Equal(t, 1, s.InProgress())
	assert.Equal(t, 3, s.NotStarted())
	assert.Equal(t, 33, s.Percent)
	assert.Equal(t, map[string]int{"frontend": 2, "backend": 2, "other": 2}, s.Categories)
	assert.Equal(t, 33, s.CategoryPercent("backend"))
	assert.Equal(t, []string{"backend", "frontend", "other"}, s.CategoryNames())
}

func TestSummarize_percent_rounding(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{3, 3, 100},
		{0, 5, 0},
	}

	for _, tt := range tests {
		items := make([]tech.Item, tt.total)
		for i := range items {
			items[i].Status = tech.StatusNotStarted
			if i < tt.completed {
				items[i].Status = tech.StatusCompleted
			}
		}
		assert.Equal(t, tt.want, Summarize(items).Percent, "%d/%d", tt.completed, tt.total)
	}
}

func TestSummarize_status_keys_always_present(t *testing.T) {
	s := Summarize([]tech.Item{{Status: tech.StatusCompleted}})
	for _, st := range tech.Statuses {
		_, ok := s.ByStatus[st]
		assert.True(t, ok, "missing %s", st)
	}
}
