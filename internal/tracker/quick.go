package tracker

import (
	"context"

	"github.com/colonyops/techtrack/internal/core/tech"
)

// MarkAllCompleted sets every item to completed and returns how many changed.
func (r *Repository) MarkAllCompleted(ctx context.Context) int {
	n := r.setAll(ctx, tech.StatusCompleted)
	r.notifier.Successf("Marked %d technologies as completed", n)
	return n
}

// ResetAll moves every item back to not-started and returns how many changed.
func (r *Repository) ResetAll(ctx context.Context) int {
	n := r.setAll(ctx, tech.StatusNotStarted)
	r.notifier.Infof("Reset progress on %d technologies", n)
	return n
}

func (r *Repository) setAll(ctx context.Context, status tech.Status) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := 0
	for i := range r.items {
		if r.items[i].Status != status {
			r.items[i] = r.items[i].Apply(tech.StatusUpdate{Status: status})
			changed++
		}
	}
	if changed > 0 {
		r.commit(ctx)
	}
	return changed
}

// PickRandom chooses a random not-started item, moves it to in-progress and
// returns it. ErrNothingToPick is returned when no candidate remains.
func (r *Repository) PickRandom(ctx context.Context) (tech.Item, error) {
	r.mu.Lock()
	var candidates []int
	for i, it := range r.items {
		if it.Status == tech.StatusNotStarted {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		r.mu.Unlock()
		r.notifier.Infof("Nothing left to start")
		return tech.Item{}, ErrNothingToPick
	}

	i := candidates[r.pick(len(candidates))]
	r.items[i] = r.items[i].Apply(tech.StatusUpdate{Status: tech.StatusInProgress})
	r.commit(ctx)
	picked := r.items[i].Clone()
	r.mu.Unlock()

	r.notifier.Successf("Started %q", picked.Title)
	return picked, nil
}

// Reset replaces the collection with the built-in seed collection.
func (r *Repository) Reset(ctx context.Context) error {
	if err := r.ReplaceAll(ctx, tech.Seed(r.now())); err != nil {
		return err
	}
	r.notifier.Warnf("Collection reset to the starter set")
	return nil
}
