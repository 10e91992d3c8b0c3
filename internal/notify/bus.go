// Package notify implements the in-process notification bus: a bounded,
// newest-first list of messages with auto-expiry and subscriber fan-out.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/colonyops/techtrack/internal/core/notify"
)

const (
	DefaultMaxVisible = 5
	DefaultDuration   = 6 * time.Second
	tickInterval      = 100 * time.Millisecond
)

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Options configures a Bus.
type Options struct {
	// MaxVisible bounds the live list; older messages are evicted.
	MaxVisible int
	// Duration is how long a message lives when AutoClose is set.
	Duration  time.Duration
	AutoClose bool
	// Enabled gates Publish. A disabled bus drops messages.
	Enabled bool
}

// DefaultOptions returns the standard bus configuration.
func DefaultOptions() Options {
	return Options{
		MaxVisible: DefaultMaxVisible,
		Duration:   DefaultDuration,
		AutoClose:  true,
		Enabled:    true,
	}
}

type entry struct {
	n         notify.Notification
	remaining time.Duration
}

// Bus holds the live notifications. It is safe for concurrent use.
type Bus struct {
	mu          sync.Mutex
	opts        Options
	entries     []entry // newest first
	subscribers []Subscriber
	nextID      int64
	now         func() time.Time
}

// NewBus creates a bus with the given options.
func NewBus(opts Options) *Bus {
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = DefaultMaxVisible
	}
	return &Bus{opts: opts, now: time.Now}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// SetEnabled turns publishing on or off.
func (b *Bus) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opts.Enabled = enabled
}

// Publish prepends a notification, evicts anything beyond MaxVisible and
// dispatches it to subscribers. It returns the new id, or 0 when the bus
// is disabled. Error notifications without an action get a retry action.
func (b *Bus) Publish(message string, level notify.Level, action *notify.Action) int64 {
	if level == notify.LevelError && action == nil {
		action = &notify.Action{Label: notify.RetryLabel}
	}

	b.mu.Lock()
	if !b.opts.Enabled {
		b.mu.Unlock()
		return 0
	}

	b.nextID++
	n := notify.Notification{
		ID:        b.nextID,
		Level:     level,
		Message:   message,
		Action:    action,
		Open:      true,
		CreatedAt: b.now(),
	}

	b.entries = append([]entry{{n: n, remaining: b.opts.Duration}}, b.entries...)
	if len(b.entries) > b.opts.MaxVisible {
		b.entries = b.entries[:b.opts.MaxVisible]
	}

	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
	return n.ID
}

// Successf publishes a success notification.
func (b *Bus) Successf(format string, args ...any) int64 {
	return b.Publish(fmt.Sprintf(format, args...), notify.LevelSuccess, nil)
}

// Infof publishes an info notification.
func (b *Bus) Infof(format string, args ...any) int64 {
	return b.Publish(fmt.Sprintf(format, args...), notify.LevelInfo, nil)
}

// Warnf publishes a warning notification.
func (b *Bus) Warnf(format string, args ...any) int64 {
	return b.Publish(fmt.Sprintf(format, args...), notify.LevelWarning, nil)
}

// Errorf publishes an error notification with the default retry action.
func (b *Bus) Errorf(format string, args ...any) int64 {
	return b.Publish(fmt.Sprintf(format, args...), notify.LevelError, nil)
}

// Dismiss removes the notification with id. Unknown ids are ignored.
func (b *Bus) Dismiss(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, e := range b.entries {
		if e.n.ID == id {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return
		}
	}
}

// DismissAll clears the list.
func (b *Bus) DismissAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// Trigger runs the action attached to id, if any, and dismisses the
// notification. It reports whether the notification was found.
func (b *Bus) Trigger(id int64) bool {
	b.mu.Lock()
	var action *notify.Action
	found := false
	for _, e := range b.entries {
		if e.n.ID == id {
			action, found = e.n.Action, true
			break
		}
	}
	b.mu.Unlock()

	if !found {
		return false
	}
	if action != nil && action.Run != nil {
		action.Run()
	}
	b.Dismiss(id)
	return true
}

// List returns the live notifications, newest first.
func (b *Bus) List() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]notify.Notification, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.n
	}
	return out
}

// Tick ages every notification by d and drops the ones whose lifetime is
// spent. It does nothing unless AutoClose is set.
func (b *Bus) Tick(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.opts.AutoClose {
		return
	}

	alive := b.entries[:0]
	for _, e := range b.entries {
		e.remaining -= d
		if e.remaining > 0 {
			alive = append(alive, e)
		}
	}
	b.entries = alive
}

// Run ticks the bus until ctx is cancelled.
func (b *Bus) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			b.Tick(now.Sub(last))
			last = now
		}
	}
}
