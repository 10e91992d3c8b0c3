package logging

import "context"

type contextKey string

const (
	commandKey contextKey = "command"
	userKey    contextKey = "user"
)

// WithCommand records the running CLI command on the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// WithUser records the signed-in demo user on the context.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetCommand returns the command name, or "" if unset.
func GetCommand(ctx context.Context) string {
	if v, ok := ctx.Value(commandKey).(string); ok {
		return v
	}
	return ""
}

// GetUser returns the demo user, or "" if unset.
func GetUser(ctx context.Context) string {
	if v, ok := ctx.Value(userKey).(string); ok {
		return v
	}
	return ""
}
