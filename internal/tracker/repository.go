// Package tracker holds the services that own application state: the item
// repository, user settings and the demo auth session.
package tracker

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/colonyops/techtrack/internal/core/kv"
	"github.com/colonyops/techtrack/internal/core/persist"
	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/rs/zerolog"
)

// KeyTechnologies is the storage key for the item collection.
const KeyTechnologies = "technologies"

// ErrNothingToPick is returned by PickRandom when no item is left to start.
var ErrNothingToPick = errors.New("every technology is already started or completed")

// Notifier receives user-facing outcome messages.
type Notifier interface {
	Successf(format string, args ...any) int64
	Infof(format string, args ...any) int64
	Warnf(format string, args ...any) int64
	Errorf(format string, args ...any) int64
}

type nopNotifier struct{}

func (nopNotifier) Successf(string, ...any) int64 { return 0 }
func (nopNotifier) Infof(string, ...any) int64    { return 0 }
func (nopNotifier) Warnf(string, ...any) int64    { return 0 }
func (nopNotifier) Errorf(string, ...any) int64   { return 0 }

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the time source used for creation stamps and deadline checks.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithNotifier sets where outcome messages go.
func WithNotifier(n Notifier) Option {
	return func(r *Repository) {
		if n != nil {
			r.notifier = n
		}
	}
}

// WithAutoSave controls whether every mutation is written through to
// storage. When off, callers persist with Flush.
func WithAutoSave(on bool) Option {
	return func(r *Repository) { r.autoSave = on }
}

// WithIDGenerator overrides how new item ids are produced.
func WithIDGenerator(fn func() tech.ID) Option {
	return func(r *Repository) { r.newID = fn }
}

// WithPicker overrides the random index source used by PickRandom.
func WithPicker(fn func(n int) int) Option {
	return func(r *Repository) { r.pick = fn }
}

// Repository owns the tracked item collection. Every operation runs to
// completion under one lock, so bulk changes are observed as a unit.
type Repository struct {
	mu       sync.Mutex
	items    []tech.Item
	dirty    bool
	slot     *persist.Slot[[]tech.Item]
	notifier Notifier
	now      func() time.Time
	newID    func() tech.ID
	pick     func(n int) int
	autoSave bool
	log      zerolog.Logger
}

// NewRepository creates a repository persisting to store. Call Load before use.
func NewRepository(store kv.KV, log zerolog.Logger, opts ...Option) *Repository {
	r := &Repository{
		notifier: nopNotifier{},
		now:      time.Now,
		newID:    tech.NewID,
		pick:     rand.IntN,
		autoSave: true,
		log:      log.With().Str("cmp", "repository").Logger(),
	}
	r.slot = persist.NewSlot[[]tech.Item](store, KeyTechnologies, r.log)

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads the stored collection, falling back to the seed collection
// when nothing is stored or the stored records fail validation. Stored
// records are defaulted and any missing or duplicate ids are reassigned.
func (r *Repository) Load(ctx context.Context) {
	now := r.now()
	stored := r.slot.Load(ctx, nil)

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored == nil {
		r.items = tech.Seed(now)
		r.log.Debug().Int("count", len(r.items)).Msg("no stored collection, using seed")
		return
	}

	seen := make(map[tech.ID]bool, len(stored))
	items := make([]tech.Item, 0, len(stored))
	for _, it := range stored {
		it = tech.Normalize(it, now)
		if it.ID == "" || seen[it.ID] {
			it.ID = r.uniqueID(seen)
			r.dirty = true
		}
		seen[it.ID] = true
		items = append(items, it)
	}

	if err := tech.ValidateCollection(items); err != nil {
		r.log.Warn().Ctx(ctx).
			Err(&persist.StorageError{Op: "load", Key: KeyTechnologies, Err: err}).
			Msg("stored collection is invalid, using seed")
		r.items = tech.Seed(now)
		r.dirty = false
		return
	}
	r.items = items
	r.log.Debug().Int("count", len(items)).Msg("collection loaded")
}

// List returns a copy of the collection in insertion order.
func (r *Repository) List() []tech.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.items)
}

// Get returns the item with id.
func (r *Repository) Get(id tech.ID) (tech.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.index(id); i >= 0 {
		return r.items[i].Clone(), true
	}
	return tech.Item{}, false
}

// Create validates the draft, assigns an id and creation time and appends
// the new item. A *tech.ValidationError lists every rejected field.
func (r *Repository) Create(ctx context.Context, draft tech.Draft) (tech.Item, error) {
	r.mu.Lock()
	id := r.uniqueID(r.idSet())
	it, err := draft.Build(id, r.now())
	if err != nil {
		r.mu.Unlock()
		return tech.Item{}, err
	}
	r.items = append(r.items, it)
	r.commit(ctx)
	r.mu.Unlock()

	r.log.Debug().Ctx(ctx).Str("id", string(it.ID)).Msg("item created")
	r.notifier.Successf("Added %q", it.Title)
	return it.Clone(), nil
}

// CycleStatus advances the item one step along the status cycle and returns
// the updated item. An unknown id is ignored and reported as not found.
func (r *Repository) CycleStatus(ctx context.Context, id tech.ID) (tech.Item, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return tech.Item{}, false
	}
	r.items[i] = r.items[i].Apply(tech.StatusUpdate{Status: r.items[i].Status.Next()})
	r.commit(ctx)
	return r.items[i].Clone(), true
}

// SetStatus sets the item's status directly. Unknown ids are ignored; an
// invalid status is a validation error.
func (r *Repository) SetStatus(ctx context.Context, id tech.ID, status tech.Status) (bool, error) {
	n, err := r.BulkSetStatus(ctx, []tech.ID{id}, status)
	return n == 1, err
}

// BulkSetStatus sets status on every listed id present in the collection
// and returns how many items were updated. Unknown and repeated ids are
// skipped.
func (r *Repository) BulkSetStatus(ctx context.Context, ids []tech.ID, status tech.Status) (int, error) {
	if !status.IsValid() {
		_, err := tech.ParseStatus(string(status))
		return 0, tech.NewFieldError("status", err)
	}

	return r.bulkApply(ctx, ids, tech.StatusUpdate{Status: status}), nil
}

// SetNotes replaces the item's notes. It reports whether the item exists.
func (r *Repository) SetNotes(ctx context.Context, id tech.ID, notes string) bool {
	return r.bulkApply(ctx, []tech.ID{id}, tech.NotesUpdate{Notes: notes}) == 1
}

// SetDeadline sets or, with a zero date, clears the item's deadline. A date
// before today is rejected and the item is left unchanged.
func (r *Repository) SetDeadline(ctx context.Context, id tech.ID, deadline tech.Date) (bool, error) {
	n, err := r.BulkSetDeadline(ctx, []tech.ID{id}, deadline)
	return n == 1, err
}

// BulkSetDeadline applies one deadline to every listed id present in the
// collection and returns how many were updated.
func (r *Repository) BulkSetDeadline(ctx context.Context, ids []tech.ID, deadline tech.Date) (int, error) {
	if err := tech.DeadlineNotPast(deadline, tech.DateOf(r.now())); err != nil {
		return 0, tech.NewFieldError("deadline", err)
	}
	return r.bulkApply(ctx, ids, tech.DeadlineUpdate{Deadline: deadline}), nil
}

// bulkApply merges u into every distinct existing id in one critical section.
func (r *Repository) bulkApply(ctx context.Context, ids []tech.ID, u tech.Update) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[tech.ID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	updated := 0
	for i := range r.items {
		if want[r.items[i].ID] {
			r.items[i] = r.items[i].Apply(u)
			updated++
		}
	}

	if updated > 0 {
		r.commit(ctx)
	}
	return updated
}

// ReplaceAll swaps in a whole new collection. Records are defaulted and
// records without an id receive a fresh one. If any record is invalid the
// replace is rejected and the current collection is kept.
func (r *Repository) ReplaceAll(ctx context.Context, items []tech.Item) error {
	now := r.now()

	next := make([]tech.Item, len(items))
	present := make(map[tech.ID]bool, len(items))
	for i, it := range items {
		next[i] = tech.Normalize(it, now)
		if next[i].ID != "" {
			present[next[i].ID] = true
		}
	}

	r.mu.Lock()
	for i := range next {
		if next[i].ID == "" {
			next[i].ID = r.uniqueID(present)
			present[next[i].ID] = true
		}
	}
	r.mu.Unlock()

	if err := tech.ValidateCollection(next); err != nil {
		return err
	}

	r.mu.Lock()
	r.items = next
	r.commit(ctx)
	r.mu.Unlock()

	r.log.Info().Ctx(ctx).Int("count", len(next)).Msg("collection replaced")
	return nil
}

// ExportSnapshot returns the collection wrapped in an export document.
func (r *Repository) ExportSnapshot() tech.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return tech.NewDocument(r.items, r.now())
}

// Import parses an export document and replaces the collection with its
// items. Nothing changes unless the whole document is valid. Failures are
// returned to the caller and not published.
func (r *Repository) Import(ctx context.Context, data []byte) (int, error) {
	items, err := tech.ParseDocument(data, r.now())
	if err == nil {
		err = r.ReplaceAll(ctx, items)
	}
	if err != nil {
		return 0, err
	}

	r.notifier.Successf("Imported %d technologies", len(items))
	return len(items), nil
}

// Flush writes the collection if it has unsaved changes.
func (r *Repository) Flush(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dirty {
		r.slot.Save(ctx, r.items)
		r.dirty = false
	}
}

// Dirty reports whether there are changes not yet written to storage.
func (r *Repository) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dirty
}

// commit marks the collection changed and writes it when autosave is on.
// Callers hold r.mu.
func (r *Repository) commit(ctx context.Context) {
	r.dirty = true
	if r.autoSave {
		r.slot.Save(ctx, r.items)
		r.dirty = false
	}
}

// index returns the position of id or -1. Callers hold r.mu.
func (r *Repository) index(id tech.ID) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) idSet() map[tech.ID]bool {
	set := make(map[tech.ID]bool, len(r.items))
	for _, it := range r.items {
		set[it.ID] = true
	}
	return set
}

// uniqueID draws ids until one is not in taken.
func (r *Repository) uniqueID(taken map[tech.ID]bool) tech.ID {
	for {
		if id := r.newID(); id != "" && !taken[id] {
			return id
		}
	}
}

func cloneAll(items []tech.Item) []tech.Item {
	out := make([]tech.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// SetAutoSave switches write-through on or off. Turning it on writes any
// pending changes.
func (r *Repository) SetAutoSave(ctx context.Context, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.autoSave = on
	if on && r.dirty {
		r.slot.Save(ctx, r.items)
		r.dirty = false
	}
}
