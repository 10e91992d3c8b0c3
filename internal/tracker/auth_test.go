package tracker

import (
	"context"
	"testing"

	"github.com/colonyops/techtrack/internal/core/kv/kvtest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login_Logout(t *testing.T) {
	ctx := context.Background()
	store := kvtest.NewMemory()
	a := NewAuthService(store, zerolog.Nop())

	assert.False(t, a.Current(ctx).IsAuthenticated)

	s, err := a.Login(ctx, "  alex ")
	require.NoError(t, err)
	assert.Equal(t, Session{IsAuthenticated: true, CurrentUser: "alex"}, s)

	assert.Equal(t, s, NewAuthService(store, zerolog.Nop()).Current(ctx))

	a.Logout(ctx)
	assert.Equal(t, Session{}, a.Current(ctx))
}

func TestAuthService_Login_requires_username(t *testing.T) {
	ctx := context.Background()
	a := NewAuthService(kvtest.NewMemory(), zerolog.Nop())

	_, err := a.Login(ctx, "   ")
	require.Error(t, err)
	assert.Equal(t, []string{"username"}, fieldNames(t, err))
	assert.False(t, a.Current(ctx).IsAuthenticated)
}
