package randid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	for _, n := range []int{-3, 0, 1, 10, 32} {
		got := Generate(n)
		if n <= 0 {
			assert.Empty(t, got)
			continue
		}
		assert.Len(t, got, n)
	}
}

func TestGenerate_Alphabet(t *testing.T) {
	id := Generate(256)
	for _, r := range id {
		require.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q in %q", r, id)
	}
}

func TestGenerate_Distinct(t *testing.T) {
	ids := make(map[string]struct{}, 50)
	for range 50 {
		ids[Generate(10)] = struct{}{}
	}
	assert.Len(t, ids, 50)
}
