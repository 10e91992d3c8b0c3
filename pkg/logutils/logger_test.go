package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "techtrack.log")

	l, closer, err := New("info", path)
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	l.Info().Str("cmp", "test").Msg("visible")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"visible"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_level(t *testing.T) {
	l, closer, err := New("warn", "")
	require.NoError(t, err)
	defer closer()
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestNew_invalid_level(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}
