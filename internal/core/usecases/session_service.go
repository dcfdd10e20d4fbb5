package usecases

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/nepalcivic/sadakreport/internal/core/domain"
	"github.com/nepalcivic/sadakreport/internal/core/ports"
)

// SessionService owns the authenticated identity: the bearer token and the
// profile it resolves to. It is constructed once at startup and passed down
// explicitly; every state transition is observable via Subscribe.
type SessionService struct {
	auth   ports.AuthAPI
	tokens ports.TokenStore

	mu      sync.RWMutex
	token   string
	profile *domain.Profile
	subs    []func(*domain.Profile)
}

// NewSessionService creates a new SessionService.
func NewSessionService(auth ports.AuthAPI, tokens ports.TokenStore) *SessionService {
	return &SessionService{auth: auth, tokens: tokens}
}

// Subscribe registers fn to be called on every session transition with the
// current profile (nil when signed out). Dependents such as the notification
// poller key their lifecycle on these callbacks.
func (s *SessionService) Subscribe(fn func(*domain.Profile)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Token returns the current bearer token, or "" when signed out.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile returns the current profile, or nil when signed out.
func (s *SessionService) Profile() *domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Restore loads a persisted token and resolves it to a profile. A missing
// token leaves the session empty. A rejected or unreachable profile fetch
// discards the token and leaves the session empty; it is never retried, so a
// second Restore on an empty store is a no-op.
func (s *SessionService) Restore(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	profile, err := s.auth.Me(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			slog.Info("persisted token rejected, clearing session")
		} else {
			slog.Warn("profile fetch failed during restore", "error", err)
		}
		if err := s.tokens.Clear(); err != nil {
			return err
		}
		return nil
	}

	s.adopt(token, profile)
	return nil
}

// Login exchanges credentials for a token, persists it, and fetches the
// profile. A rejected login returns a user-facing message and does not touch
// persisted state.
func (s *SessionService) Login(ctx context.Context, phone, password string) domain.LoginResult {
	token, err := s.auth.Login(ctx, phone, password)
	if err != nil {
		msg := "connection error, please try again"
		if errors.Is(err, domain.ErrUnauthorized) {
			msg = "invalid phone number or password"
		}
		return domain.LoginResult{Success: false, Message: msg}
	}

	if err := s.tokens.Save(token); err != nil {
		slog.Error("persist token", "error", err)
		return domain.LoginResult{Success: false, Message: "could not save session"}
	}

	profile, err := s.auth.Me(ctx, token)
	if err != nil {
		// The token was accepted but the profile fetch failed; roll the
		// persisted token back so the store never holds a session we
		// could not establish.
		_ = s.tokens.Clear()
		return domain.LoginResult{Success: false, Message: "connection error, please try again"}
	}

	s.adopt(token, profile)
	return domain.LoginResult{Success: true, Profile: profile}
}

// Register forwards a sign-up form to the backend. It does not log in.
func (s *SessionService) Register(ctx context.Context, form domain.Registration) error {
	return s.auth.Register(ctx, form)
}

// Logout clears the persisted token and in-memory profile unconditionally.
// Calling it on an empty session is harmless.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.tokens.Clear(); err != nil {
		return err
	}

	s.mu.Lock()
	wasPresent := s.profile != nil
	s.token = ""
	s.profile = nil
	subs := s.subs
	s.mu.Unlock()

	if wasPresent {
		for _, fn := range subs {
			fn(nil)
		}
	}
	return nil
}

func (s *SessionService) adopt(token string, profile *domain.Profile) {
	s.mu.Lock()
	s.token = token
	s.profile = profile
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(profile)
	}
	slog.Info("session established", "role", profile.Role, "user_id", profile.ID)
}
