package kv

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSetDelete(t *testing.T) {
	s := New[string, []string]()

	_, ok := s.Get("react")
	assert.False(t, ok)

	s.Set("react", []string{"https://react.dev"})
	got, ok := s.Get("react")
	require.True(t, ok)
	assert.Equal(t, []string{"https://react.dev"}, got)
	assert.Equal(t, 1, s.Len())

	s.Delete("react")
	assert.Equal(t, 0, s.Len())
}

func TestStore_GetOrLoad(t *testing.T) {
	s := New[string, int]()
	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}

	v, hit, err := s.GetOrLoad("answer", load)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 42, v)

	v, hit, err = s.GetOrLoad("answer", load)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestStore_GetOrLoad_does_not_cache_errors(t *testing.T) {
	s := New[string, int]()
	boom := errors.New("boom")

	_, _, err := s.GetOrLoad("k", func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := New[int, int]()
	s.Set(1, 1)
	s.Set(2, 2)

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestStore_concurrent_access(t *testing.T) {
	s := New[int, int]()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set(i, i*i)
			_, _ = s.Get(i)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
