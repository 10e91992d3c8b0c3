// Package catalog simulates the remote technology catalog: a slow,
// cancellable source with its own item list, separate from the local
// repository.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/colonyops/techtrack/pkg/kv"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrAborted marks a request that was cancelled or superseded. Callers
// filter it with IsAborted and never show it to the user.
var ErrAborted = errors.New("catalog request aborted")

// IsAborted reports whether err came from a cancelled or superseded request.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}

// FetchError is a source failure recorded on the facade state.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load the catalog: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Latencies are the simulated round-trip times per request kind.
type Latencies struct {
	Fetch     time.Duration
	Add       time.Duration
	Resources time.Duration
	Search    time.Duration
}

// DefaultLatencies returns the standard simulated delays.
func DefaultLatencies() Latencies {
	return Latencies{
		Fetch:     time.Second,
		Add:       500 * time.Millisecond,
		Resources: 700 * time.Millisecond,
		Search:    300 * time.Millisecond,
	}
}

// State is a snapshot of the facade.
type State struct {
	Items   []tech.Item
	Loading bool
	Err     error
}

// Facade fronts a Source with latency, supersession and an in-memory list.
type Facade struct {
	source  Source
	latency Latencies
	now     func() time.Time
	cache   *kv.Store[string, []string]
	log     zerolog.Logger

	mu      sync.Mutex
	items   []tech.Item
	loading bool
	err     error
	gen     uint64
	cancel  context.CancelFunc
}

// New returns a facade over source.
func New(source Source, latency Latencies, log zerolog.Logger) *Facade {
	return &Facade{
		source:  source,
		latency: latency,
		now:     time.Now,
		cache:   kv.New[string, []string](),
		log:     log.With().Str("cmp", "catalog").Logger(),
	}
}

// SetClock overrides the time source used for created stamps.
func (f *Facade) SetClock(now func() time.Time) { f.now = now }

// State returns a copy of the current state.
func (f *Facade) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]tech.Item, len(f.items))
	for i, it := range f.items {
		items[i] = it.Clone()
	}
	return State{Items: items, Loading: f.loading, Err: f.err}
}

// FetchAll loads the whole catalog. Starting a new fetch cancels the one in
// flight; the superseded call returns an ErrAborted error and never touches
// state. A source failure is recorded as a *FetchError and returned.
func (f *Facade) FetchAll(ctx context.Context) ([]tech.Item, error) {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	f.gen++
	gen := f.gen
	f.cancel = cancel
	f.loading = true
	f.err = nil
	f.mu.Unlock()
	defer cancel()

	var items []tech.Item
	err := wait(fetchCtx, f.latency.Fetch)
	if err == nil {
		items, err = f.source.List(fetchCtx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		f.log.Debug().Uint64("gen", gen).Msg("fetch superseded")
		return nil, fmt.Errorf("%w: superseded", ErrAborted)
	}

	f.loading = false
	f.cancel = nil

	if ctxErr := fetchCtx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrAborted, ctxErr)
	}
	if err != nil {
		f.err = &FetchError{Err: err}
		f.log.Warn().Err(err).Msg("catalog fetch failed")
		return nil, f.err
	}

	now := f.now()
	next := make([]tech.Item, len(items))
	for i, it := range items {
		next[i] = tech.Normalize(it, now)
	}
	f.items = next

	out := make([]tech.Item, len(next))
	for i, it := range next {
		out[i] = it.Clone()
	}
	return out, nil
}

// AddOne submits a new item to the catalog. The catalog assigns a UUID and
// appends the item to its own list.
func (f *Facade) AddOne(ctx context.Context, draft tech.Draft) (tech.Item, error) {
	if err := wait(ctx, f.latency.Add); err != nil {
		return tech.Item{}, fmt.Errorf("%w: %w", ErrAborted, err)
	}

	it, err := draft.Build(tech.ID(uuid.NewString()), f.now())
	if err != nil {
		return tech.Item{}, err
	}

	f.mu.Lock()
	f.items = append(f.items, it)
	f.mu.Unlock()

	return it.Clone(), nil
}

// Resources returns known learning links for a technology name, or an empty
// list when the name is unknown. Answers are cached for the facade's life.
func (f *Facade) Resources(ctx context.Context, name string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	links, _, err := f.cache.GetOrLoad(key, func() ([]string, error) {
		if err := wait(ctx, f.latency.Resources); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAborted, err)
		}
		for known, urls := range knownResources {
			if strings.ToLower(known) == key {
				return slices.Clone(urls), nil
			}
		}
		return []string{}, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(links), nil
}

// Search returns catalog items whose title contains query, ignoring case.
// A blank query returns nothing without contacting the source.
func (f *Facade) Search(ctx context.Context, query string) ([]tech.Item, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	if err := wait(ctx, f.latency.Search); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAborted, err)
	}

	all, err := f.source.List(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
		}
		return nil, &FetchError{Err: err}
	}

	now := f.now()
	var matches []tech.Item
	for _, it := range all {
		if strings.Contains(strings.ToLower(it.Title), query) {
			matches = append(matches, tech.Normalize(it, now))
		}
	}
	return matches, nil
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
