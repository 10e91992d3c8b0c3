package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/colonyops/techtrack/internal/core/kv"
	"github.com/peterbourgon/diskv/v3"
)

const fileExt = ".json"

// DiskKV implements kv.KV with one JSON file per key under a base directory.
type DiskKV struct {
	d *diskv.Diskv
}

var _ kv.KV = (*DiskKV)(nil)

// NewDiskKV creates a file-backed KV store rooted at basePath.
func NewDiskKV(basePath string) *DiskKV {
	return &DiskKV{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      1024 * 1024,
		TempDir:           filepath.Join(basePath, ".tmp"),
	})}
}

func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{Path: []string{}, FileName: key + fileExt}
}

func pathToKey(pk *diskv.PathKey) string {
	return strings.TrimSuffix(pk.FileName, fileExt)
}

// Get retrieves and deserializes a value by key.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *DiskKV) Get(_ context.Context, key string, dest any) error {
	data, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("kv get %q: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

func (s *DiskKV) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *DiskKV) Delete(_ context.Context, key string) error {
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

func (s *DiskKV) Has(_ context.Context, key string) (bool, error) {
	return s.d.Has(key), nil
}

// ListKeys returns all keys in sorted order.
func (s *DiskKV) ListKeys(ctx context.Context) ([]string, error) {
	keys := []string{}
	for key := range s.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	slices.Sort(keys)
	return keys, nil
}
