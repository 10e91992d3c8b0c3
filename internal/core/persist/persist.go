// Package persist is the best-effort adapter between in-memory state and a
// kv.KV store. Reads fall back to a default and writes never fail the
// caller; problems are logged as warnings.
package persist

import (
	"context"
	"fmt"

	"github.com/colonyops/techtrack/internal/core/kv"
	"github.com/rs/zerolog"
)

// StorageError describes a failed read or write against the store.
type StorageError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Slot binds one key of a store to a value type.
type Slot[T any] struct {
	store  kv.KV
	key    string
	logger zerolog.Logger
}

// NewSlot returns a slot for key. The logger receives storage warnings.
func NewSlot[T any](store kv.KV, key string, logger zerolog.Logger) *Slot[T] {
	return &Slot[T]{store: store, key: key, logger: logger}
}

// Load returns the stored value, or def when the key is missing or cannot
// be decoded. The stored JSON is decoded over a copy of def, so fields
// absent from storage keep their default.
func (s *Slot[T]) Load(ctx context.Context, def T) T {
	v := def
	err := s.store.Get(ctx, s.key, &v)
	switch {
	case err == nil:
		return v
	case kv.IsNotFound(err):
		return def
	default:
		s.warn(&StorageError{Op: "load", Key: s.key, Err: err})
		return def
	}
}

// Save writes v. Failures are logged and otherwise ignored; in-memory state
// stays authoritative.
func (s *Slot[T]) Save(ctx context.Context, v T) {
	if err := s.store.Set(ctx, s.key, v); err != nil {
		s.warn(&StorageError{Op: "save", Key: s.key, Err: err})
	}
}

// Clear removes the stored value.
func (s *Slot[T]) Clear(ctx context.Context) {
	if err := s.store.Delete(ctx, s.key); err != nil {
		s.warn(&StorageError{Op: "clear", Key: s.key, Err: err})
	}
}

func (s *Slot[T]) warn(err *StorageError) {
	s.logger.Warn().Err(err).Str("key", err.Key).Str("op", err.Op).Msg("storage degraded, using in-memory state")
}
