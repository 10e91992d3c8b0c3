// Package notify defines transient user-facing notification messages.
package notify

import "time"

// Level is the notification type.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// IsValid reports whether l is a known level.
func (l Level) IsValid() bool {
	switch l {
	case LevelSuccess, LevelInfo, LevelWarning, LevelError:
		return true
	}
	return false
}

// RetryLabel is the action label attached to error notifications that
// arrive without one.
const RetryLabel = "retry"

// Action is an optional follow-up offered alongside a notification.
type Action struct {
	Label string
	Run   func()
}

// Notification is a single message on the bus.
type Notification struct {
	ID        int64     `json:"id"`
	Level     Level     `json:"type"`
	Message   string    `json:"message"`
	Action    *Action   `json:"-"`
	Open      bool      `json:"open"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActionLabel returns the action label or "".
func (n Notification) ActionLabel() string {
	if n.Action == nil {
		return ""
	}
	return n.Action.Label
}
