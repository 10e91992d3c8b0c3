// Package kv defines the durable key-value store contract. Values are
// JSON-serialized by the implementations.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned (possibly wrapped) by Get when a key is absent.
var ErrNotFound = errors.New("key not found")

// KV is a persistent key-value store.
type KV interface {
	// Get decodes the value stored under key into dest.
	Get(ctx context.Context, key string, dest any) error
	// Set encodes value and stores it under key, replacing any prior value.
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	// ListKeys returns all keys in sorted order.
	ListKeys(ctx context.Context) ([]string, error)
}

// IsNotFound reports whether err indicates a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
