// Package search debounces interactive lookups so only the last query of a
// burst reaches the catalog.
package search

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay is how long input must stay quiet before a lookup fires.
const DefaultDelay = 500 * time.Millisecond

// LookupFunc performs one lookup. It must return promptly once ctx is done.
type LookupFunc[T any] func(ctx context.Context, query string) (T, error)

// Result is delivered for every lookup that was not superseded.
type Result[T any] struct {
	Query string
	Value T
	Err   error
}

// Debouncer delays lookups until input settles. Each Input stops the pending
// timer and cancels the lookup in flight; results of superseded lookups are
// dropped.
//
// deliver runs with the debouncer locked and must not call back into it.
type Debouncer[T any] struct {
	delay   time.Duration
	lookup  LookupFunc[T]
	deliver func(Result[T])

	mu      sync.Mutex
	seq     uint64
	timer   *time.Timer
	pending pendingQuery
	cancel  context.CancelFunc
	closed  bool

	// wg counts scheduled and running lookups.
	wg sync.WaitGroup
}

type pendingQuery struct {
	ctx   context.Context
	query string
}

// NewDebouncer returns a debouncer calling lookup after delay of quiet and
// passing fresh results to deliver.
func NewDebouncer[T any](delay time.Duration, lookup LookupFunc[T], deliver func(Result[T])) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, lookup: lookup, deliver: deliver}
}

// Input records a new query and restarts the delay.
func (d *Debouncer[T]) Input(ctx context.Context, query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	d.stopLocked()
	d.seq++
	seq := d.seq
	d.pending = pendingQuery{ctx: ctx, query: query}

	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() { d.fire(ctx, seq, query) })
}

// Settle fires the pending lookup now, if there is one, and waits for every
// lookup to finish.
func (d *Debouncer[T]) Settle() {
	d.mu.Lock()
	fireNow := d.timer != nil && d.timer.Stop()
	d.timer = nil
	seq, p := d.seq, d.pending
	d.mu.Unlock()

	if fireNow {
		d.fire(p.ctx, seq, p.query)
	}
	d.wg.Wait()
}

// Close stops the pending timer and cancels the lookup in flight. Nothing is
// delivered after Close returns.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	d.closed = true
	d.stopLocked()
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Debouncer[T]) fire(parent context.Context, seq uint64, query string) {
	defer d.wg.Done()

	d.mu.Lock()
	if d.closed || seq != d.seq {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	d.timer = nil
	d.cancel = cancel
	d.mu.Unlock()

	v, err := d.lookup(ctx, query)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || seq != d.seq || ctx.Err() != nil {
		return
	}
	d.cancel = nil
	d.deliver(Result[T]{Query: query, Value: v, Err: err})
}

// stopLocked stops the pending timer and cancels any lookup. Callers hold d.mu.
func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		if d.timer.Stop() {
			d.wg.Done()
		}
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
