// Package filter derives the visible subset of a collection from a status
// filter and a free-text query.
package filter

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/colonyops/techtrack/internal/core/tech"
)

// StatusFilter is either All or one exact status.
type StatusFilter string

// All matches every status.
const All StatusFilter = "all"

// ParseStatusFilter accepts "all" (or "") and the three status values.
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == string(All) {
		return All, nil
	}
	st, err := tech.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("invalid filter %q: use all or a status", s)
	}
	return StatusFilter(st), nil
}

// Matches reports whether an item with status s passes the filter.
func (f StatusFilter) Matches(s tech.Status) bool {
	return f == All || f == "" || tech.Status(f) == s
}

// Visible returns the items that pass the status filter and, when query is
// non-empty, contain it case-insensitively in the title, description or
// notes. Input order is preserved.
func Visible(items []tech.Item, status StatusFilter, query string) []tech.Item {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]tech.Item, 0, len(items))
	for _, it := range items {
		if !status.Matches(it.Status) {
			continue
		}
		if q != "" && !matchesQuery(it, q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesQuery(it tech.Item, q string) bool {
	return strings.Contains(strings.ToLower(it.Title), q) ||
		strings.Contains(strings.ToLower(it.Description), q) ||
		strings.Contains(strings.ToLower(it.Notes), q)
}

// ByCategory keeps items whose category matches the glob pattern, for
// example "front*" or "{backend,devops}". An empty pattern keeps everything.
func ByCategory(items []tech.Item, pattern string) ([]tech.Item, error) {
	if pattern == "" {
		return items, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid category pattern %q", pattern)
	}

	out := make([]tech.Item, 0, len(items))
	for _, it := range items {
		ok, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(it.Category))
		if err != nil {
			return nil, fmt.Errorf("match category %q: %w", it.Category, err)
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}
