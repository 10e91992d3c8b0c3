// Package tech defines the tracked technology domain model: items, their
// status lifecycle, field defaults and validation rules.
package tech

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/colonyops/techtrack/pkg/randid"
)

// Status represents the learning state of an item.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in cycle order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return slices.Contains(Statuses, s)
}

// Next returns the status that follows s in the fixed cycle
// not-started -> in-progress -> completed -> not-started. Unknown values
// restart the cycle.
func (s Status) Next() Status {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusNotStarted
	}
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.TrimSpace(s))
	if !st.IsValid() {
		return "", fmt.Errorf("invalid status %q: must be one of %s", s, joinStatuses())
	}
	return st, nil
}

func joinStatuses() string {
	parts := make([]string, len(Statuses))
	for i, s := range Statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// Difficulty is the self-assessed difficulty of an item.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// IsValid reports whether d is one of the known difficulties.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// DefaultCategory is assigned to items created without a category.
const DefaultCategory = "other"

// ID identifies an item. Legacy exports stored numeric ids, so decoding
// accepts JSON numbers as well as strings.
type ID string

// NewID returns a fresh random item id.
func NewID() ID {
	return ID(randid.Generate(10))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Item is a single tracked technology.
type Item struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Notes       string     `json:"notes"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Deadline    Date       `json:"deadline"`
	Resources   []string   `json:"resources"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Clone returns a copy of the item that shares no slices with it.
func (i Item) Clone() Item {
	out := i
	out.Resources = slices.Clone(i.Resources)
	if out.Resources == nil {
		out.Resources = []string{}
	}
	return out
}

// Normalize applies field defaults: trimmed title and description, the
// default category and difficulty, blank resources stripped, and a
// creation time of now when none is set. Status is left untouched.
func Normalize(it Item, now time.Time) Item {
	out := it.Clone()
	out.Title = strings.TrimSpace(out.Title)
	out.Description = strings.TrimSpace(out.Description)
	if strings.TrimSpace(out.Category) == "" {
		out.Category = DefaultCategory
	}
	if out.Difficulty == "" {
		out.Difficulty = DifficultyBeginner
	}
	out.Resources = StripResources(out.Resources)
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	return out
}

// StripResources trims each entry and drops blank ones. The result is never nil.
func StripResources(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
