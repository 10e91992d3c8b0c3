package tracker

import (
	"context"
	"strings"
	"sync"

	"github.com/colonyops/techtrack/internal/core/kv"
	"github.com/colonyops/techtrack/internal/core/persist"
	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/colonyops/techtrack/internal/core/validate"
	"github.com/rs/zerolog"
)

// KeyAuth is the storage key for the demo session.
const KeyAuth = "auth"

// Session is the stored login state. Nothing is verified: any non-empty
// username logs in.
type Session struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	CurrentUser     string `json:"currentUser"`
}

// AuthService manages the demo session.
type AuthService struct {
	mu   sync.Mutex
	slot *persist.Slot[Session]
}

// NewAuthService returns a service persisting to store.
func NewAuthService(store kv.KV, log zerolog.Logger) *AuthService {
	return &AuthService{
		slot: persist.NewSlot[Session](store, KeyAuth, log.With().Str("cmp", "auth").Logger()),
	}
}

// Login starts a session for username.
func (a *AuthService) Login(ctx context.Context, username string) (Session, error) {
	username = strings.TrimSpace(username)
	if err := validate.Username(username); err != nil {
		return Session{}, tech.NewFieldError("username", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	s := Session{IsAuthenticated: true, CurrentUser: username}
	a.slot.Save(ctx, s)
	return s, nil
}

// Logout ends the session.
func (a *AuthService) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.slot.Clear(ctx)
}

// Current returns the stored session.
func (a *AuthService) Current(ctx context.Context) Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.slot.Load(ctx, Session{})
	if s.CurrentUser == "" {
		s.IsAuthenticated = false
	}
	return s
}
