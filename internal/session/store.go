// Package session persists the bearer token and cached user profile in the
// process-wide local storage.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"dms-go/internal/dms"
	"dms-go/internal/model"
)

// Storage keys shared with the web front-end.
const (
	TokenKey = "access_token"
	UserKey  = "user"
)

// Store implements dms.SessionStore over a dms.Storage. It reads the storage
// medium on every call and never caches the session.
type Store struct {
	storage   dms.Storage
	navigator dms.Navigator
	clock     dms.Clock
	logger    dms.Logger
}

var _ dms.SessionStore = (*Store)(nil)

// NewStore creates a session store. A nil clock or logger selects the real
// clock and a no-op logger.
func NewStore(storage dms.Storage, navigator dms.Navigator, clock dms.Clock, logger dms.Logger) *Store {
	if clock == nil {
		clock = dms.RealClock{}
	}
	if logger == nil {
		logger = dms.NewNopLogger()
	}
	return &Store{storage: storage, navigator: navigator, clock: clock, logger: logger}
}

// Load returns the current session or nil. The token and the profile are
// only valid together: a missing, empty or expired token, or a missing or
// unreadable profile, means no session.
func (s *Store) Load() (*model.Session, error) {
	token, ok, err := s.storage.GetItem(TokenKey)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}
	if !ok || token == "" {
		return nil, nil
	}
	if s.expired(token) {
		s.logger.Info("stored token has expired")
		return nil, nil
	}

	raw, ok, err := s.storage.GetItem(UserKey)
	if err != nil {
		return nil, fmt.Errorf("reading user: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	session := &model.Session{Token: token}
	if err := json.Unmarshal([]byte(raw), &session.User); err != nil {
		s.logger.Warn("ignoring unreadable user profile", "error", err)
		return nil, nil
	}
	return session, nil
}

// Save persists the token and profile together.
func (s *Store) Save(session model.Session) error {
	if session.Token == "" {
		return errors.New("session has no token")
	}
	raw, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := s.storage.SetItem(TokenKey, session.Token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if err := s.storage.SetItem(UserKey, string(raw)); err != nil {
		return fmt.Errorf("storing user: %w", err)
	}
	return nil
}

// Clear removes both the token and the profile.
func (s *Store) Clear() error {
	if err := s.storage.RemoveItem(TokenKey); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}
	if err := s.storage.RemoveItem(UserKey); err != nil {
		return fmt.Errorf("removing user: %w", err)
	}
	return nil
}

// RequireOrRedirect returns the current session or navigates to the login
// route. A storage failure is treated as no session.
func (s *Store) RequireOrRedirect(current dms.Route) (*model.Session, bool) {
	session, err := s.Load()
	if err != nil {
		s.logger.Error("loading session failed", "route", string(current), "error", err)
	}
	if session == nil {
		s.logger.Debug("no session, redirecting", "from", string(current))
		s.navigator.Navigate(dms.RouteLogin)
		return nil, false
	}
	return session, true
}

// RequireRole navigates to the dashboard unless the session's user holds role.
func (s *Store) RequireRole(session *model.Session, role model.Role) bool {
	if session != nil && session.User.Role == role {
		return true
	}
	s.logger.Debug("insufficient role, redirecting", "want", string(role))
	s.navigator.Navigate(dms.RouteDashboard)
	return false
}

// expired reports whether token is a JWT whose exp claim is in the past.
// Tokens that are not JWTs, or carry no exp, never expire here; the server
// remains the authority.
func (s *Store) expired(token string) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.clock.Now().Before(claims.ExpiresAt.Time)
}
