package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the command and user from the event context onto log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if cmd := GetCommand(ctx); cmd != "" {
		e.Str("command", cmd)
	}
	if user := GetUser(ctx); user != "" {
		e.Str("user", user)
	}
}
