package persist

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/colonyops/techtrack/internal/core/kv/kvtest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	DarkMode bool   `json:"darkMode"`
	Language string `json:"language"`
}

func newSlot(t *testing.T) (*Slot[settings], *kvtest.Memory, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	store := kvtest.NewMemory()
	return NewSlot[settings](store, "app-settings", zerolog.New(&buf)), store, &buf
}

func TestSlot_Load_missing_returns_default_silently(t *testing.T) {
	slot, _, logs := newSlot(t)
	def := settings{Language: "ru"}

	assert.Equal(t, def, slot.Load(context.Background(), def))
	assert.Empty(t, logs.String())
}

func TestSlot_SaveThenLoad(t *testing.T) {
	slot, _, _ := newSlot(t)
	ctx := context.Background()

	slot.Save(ctx, settings{DarkMode: true, Language: "en"})
	assert.Equal(t, settings{DarkMode: true, Language: "en"}, slot.Load(ctx, settings{}))
}

func TestSlot_Load_corrupt_falls_back_and_logs(t *testing.T) {
	slot, store, logs := newSlot(t)
	store.PutRaw("app-settings", []byte("{not json"))

	got := slot.Load(context.Background(), settings{Language: "ru"})
	assert.Equal(t, "ru", got.Language)
	assert.Contains(t, logs.String(), `"key":"app-settings"`)
	assert.Contains(t, logs.String(), `"op":"load"`)
}

func TestSlot_Load_read_error_falls_back(t *testing.T) {
	slot, store, logs := newSlot(t)
	store.FailGet("app-settings", errors.New("permission denied"))

	got := slot.Load(context.Background(), settings{Language: "ru"})
	assert.Equal(t, "ru", got.Language)
	assert.Contains(t, logs.String(), "permission denied")
}

func TestSlot_Save_error_is_swallowed(t *testing.T) {
	slot, store, logs := newSlot(t)
	store.FailSet("app-settings", errors.New("quota exceeded"))

	require.NotPanics(t, func() {
		slot.Save(context.Background(), settings{DarkMode: true})
	})
	assert.Contains(t, logs.String(), "quota exceeded")
	assert.Contains(t, logs.String(), `"op":"save"`)

	_, ok := store.Raw("app-settings")
	assert.False(t, ok)
}

func TestSlot_Clear(t *testing.T) {
	slot, store, _ := newSlot(t)
	ctx := context.Background()

	slot.Save(ctx, settings{DarkMode: true})
	slot.Clear(ctx)

	_, ok := store.Raw("app-settings")
	assert.False(t, ok)
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &StorageError{Op: "save", Key: "k", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `storage save "k": boom`, err.Error())
}

func TestSlot_Load_merges_missing_fields_with_default(t *testing.T) {
	slot, store, _ := newSlot(t)
	store.PutRaw("app-settings", []byte(`{"darkMode":true}`))

	got := slot.Load(context.Background(), settings{Language: "ru"})
	assert.Equal(t, settings{DarkMode: true, Language: "ru"}, got)
}
