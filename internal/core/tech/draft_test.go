package tech

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	names := make([]string, 0, len(ve.Fields))
	for _, fe := range ve.Fields {
		names = append(names, fe.Field)
	}
	return names
}

func TestDraft_Build_applies_defaults(t *testing.T) {
	it, err := Draft{Title: "Rust", Description: "Systems language"}.Build("id-1", testNow)
	require.NoError(t, err)

	assert.Equal(t, ID("id-1"), it.ID)
	assert.Equal(t, StatusNotStarted, it.Status)
	assert.Equal(t, DefaultCategory, it.Category)
	assert.Equal(t, DifficultyBeginner, it.Difficulty)
	assert.Equal(t, "", it.Notes)
	assert.Empty(t, it.Resources)
	assert.True(t, it.Deadline.IsZero())
	assert.Equal(t, testNow, it.CreatedAt)
}

func TestDraft_Build_keeps_explicit_fields(t *testing.T) {
	deadline := NewDate(2025, time.July, 1)
	it, err := Draft{
		Title:       "Node.js",
		Description: "Server-side JavaScript runtime",
		Status:      StatusInProgress,
		Notes:       "streams next",
		Category:    "backend",
		Difficulty:  DifficultyIntermediate,
		Deadline:    deadline,
		Resources:   []string{"https://nodejs.org", ""},
	}.Build("id-2", testNow)
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, it.Status)
	assert.Equal(t, "streams next", it.Notes)
	assert.Equal(t, "backend", it.Category)
	assert.Equal(t, DifficultyIntermediate, it.Difficulty)
	assert.True(t, it.Deadline.Equal(deadline))
	assert.Equal(t, []string{"https://nodejs.org"}, it.Resources)
}

func TestDraft_Build_deadline_today_allowed(t *testing.T) {
	_, err := Draft{Title: "Go", Description: "Simple and fast", Deadline: DateOf(testNow)}.Build("x", testNow)
	assert.NoError(t, err)
}

func TestDraft_Build_reports_every_field(t *testing.T) {
	_, err := Draft{
		Title:       "R",
		Description: "short",
		Status:      "done",
		Difficulty:  "expert",
		Deadline:    NewDate(2020, time.January, 1),
		Resources:   []string{"https://ok.example", "not a url"},
	}.Build("x", testNow)

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.ElementsMatch(t,
		[]string{"title", "description", "status", "difficulty", "deadline", "resources[1]"},
		fieldNames(t, err),
	)
}

func TestValidateCollection(t *testing.T) {
	valid := Normalize(Item{ID: "a", Title: "Go", Description: "Simple and fast", Status: StatusCompleted}, testNow)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateCollection([]Item{valid}))
	})

	t.Run("past deadline is allowed", func(t *testing.T) {
		old := valid
		old.Deadline = NewDate(2020, time.January, 1)
		assert.NoError(t, ValidateCollection([]Item{old}))
	})

	t.Run("duplicate ids", func(t *testing.T) {
		err := ValidateCollection([]Item{valid, valid})
		assert.Equal(t, []string{"technologies[1].id"}, fieldNames(t, err))
	})

	t.Run("missing id", func(t *testing.T) {
		noID := valid
		noID.ID = ""
		err := ValidateCollection([]Item{noID})
		assert.Equal(t, []string{"technologies[0].id"}, fieldNames(t, err))
	})

	t.Run("bad fields carry index prefix", func(t *testing.T) {
		bad := valid
		bad.ID = "b"
		bad.Title = ""
		bad.Status = ""
		err := ValidateCollection([]Item{valid, bad})
		assert.ElementsMatch(t, []string{"technologies[1].title", "technologies[1].status"}, fieldNames(t, err))
	})
}

func TestSeed_is_valid(t *testing.T) {
	seed := Seed(testNow)
	assert.Len(t, seed, 8)
	assert.NoError(t, ValidateCollection(seed))
}
