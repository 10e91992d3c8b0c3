// Package kvtest provides an in-memory kv.KV for tests.
package kvtest

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/colonyops/techtrack/internal/core/kv"
)

// Memory is a map-backed kv.KV. Failing keys can be injected with FailGet
// and FailSet.
type Memory struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErrs map[string]error
	setErrs map[string]error
}

var _ kv.KV = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		data:    make(map[string][]byte),
		getErrs: make(map[string]error),
		setErrs: make(map[string]error),
	}
}

// FailGet makes every Get of key return err.
func (m *Memory) FailGet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErrs[key] = err
}

// FailSet makes every Set of key return err.
func (m *Memory) FailSet(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErrs[key] = err
}

// PutRaw stores raw bytes under key without encoding.
func (m *Memory) PutRaw(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
}

// Raw returns the stored bytes for key.
func (m *Memory) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	return raw, ok
}

func (m *Memory) Get(_ context.Context, key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.getErrs[key]; err != nil {
		return err
	}
	raw, ok := m.data[key]
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	return json.Unmarshal(raw, dest)
}

func (m *Memory) Set(_ context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.setErrs[key]; err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *Memory) ListKeys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}
