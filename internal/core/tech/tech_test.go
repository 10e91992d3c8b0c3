package tech

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestStatus_Next_cycles(t *testing.T) {
	assert.Equal(t, StatusInProgress, StatusNotStarted.Next())
	assert.Equal(t, StatusCompleted, StatusInProgress.Next())
	assert.Equal(t, StatusNotStarted, StatusCompleted.Next())
}

func TestStatus_Next_closure(t *testing.T) {
	for _, s := range Statuses {
		assert.Equal(t, s, s.Next().Next().Next(), "three steps from %s", s)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"not-started", StatusNotStarted, false},
		{"in-progress", StatusInProgress, false},
		{" completed ", StatusCompleted, false},
		{"done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"string", `"abc123"`, "abc123"},
		{"integer", `1712345678901`, "1712345678901"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestNewID_unique(t *testing.T) {
	seen := make(map[ID]bool)
	for range 100 {
		seen[NewID()] = true
	}
	assert.Len(t, seen, 100)
}

func TestNormalize_defaults(t *testing.T) {
	got := Normalize(Item{
		ID:          "x",
		Title:       "  Rust  ",
		Description: " Systems language ",
		Resources:   []string{"", " https://www.rust-lang.org ", "   "},
	}, testNow)

	assert.Equal(t, "Rust", got.Title)
	assert.Equal(t, "Systems language", got.Description)
	assert.Equal(t, DefaultCategory, got.Category)
	assert.Equal(t, DifficultyBeginner, got.Difficulty)
	assert.Equal(t, []string{"https://www.rust-lang.org"}, got.Resources)
	assert.Equal(t, testNow, got.CreatedAt)
	assert.Empty(t, got.Status, "status is not defaulted")
}

func TestNormalize_keeps_createdAt(t *testing.T) {
	created := testNow.Add(-48 * time.Hour)
	got := Normalize(Item{CreatedAt: created}, testNow)
	assert.Equal(t, created, got.CreatedAt)
}

func TestItem_JSON_shape(t *testing.T) {
	it := Normalize(Item{ID: "1", Title: "Go", Description: "Concurrency and tooling", Status: StatusNotStarted}, testNow)

	data, err := json.Marshal(it)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "", fields["deadline"])
	assert.Equal(t, []any{}, fields["resources"])
	assert.Equal(t, "", fields["notes"])
	assert.Equal(t, "other", fields["category"])
}

func TestItem_Clone_does_not_share_resources(t *testing.T) {
	orig := Item{Resources: []string{"https://go.dev"}}
	cp := orig.Clone()
	cp.Resources[0] = "https://example.com"
	assert.Equal(t, "https://go.dev", orig.Resources[0])
}
