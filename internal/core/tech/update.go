package tech

// Update is a change to exactly one mutable group of item fields.
// Implementations are StatusUpdate, NotesUpdate and DeadlineUpdate.
type Update interface {
	applyTo(it *Item)
}

// StatusUpdate replaces the status.
type StatusUpdate struct {
	Status Status
}

func (u StatusUpdate) applyTo(it *Item) { it.Status = u.Status }

// NotesUpdate replaces the notes.
type NotesUpdate struct {
	Notes string
}

func (u NotesUpdate) applyTo(it *Item) { it.Notes = u.Notes }

// DeadlineUpdate replaces the deadline. A zero Deadline clears it.
type DeadlineUpdate struct {
	Deadline Date
}

func (u DeadlineUpdate) applyTo(it *Item) { it.Deadline = u.Deadline }

// Apply returns a copy of the item with the update merged in. Fields not
// named by the update are carried over unchanged.
func (i Item) Apply(u Update) Item {
	out := i.Clone()
	u.applyTo(&out)
	return out
}
