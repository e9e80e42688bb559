package dms

import "dms-go/internal/model"

// SessionStore persists the bearer token and cached user profile.
// Implementations must re-read the storage medium on every call; another
// command may have logged in or out since the last read.
type SessionStore interface {
	// Load returns the current session, or nil when there is none.
	// A missing token means no session regardless of the stored profile.
	Load() (*model.Session, error)

	// Save persists the token and profile together.
	Save(session model.Session) error

	// Clear removes both the token and the profile.
	Clear() error

	// RequireOrRedirect returns the current session. When there is none it
	// navigates to the login route and returns false; the caller must stop.
	RequireOrRedirect(current Route) (*model.Session, bool)

	// RequireRole navigates to the dashboard and returns false when the
	// session's user does not hold role.
	RequireRole(session *model.Session, role model.Role) bool
}
