package testutil

import (
	"testing"

	"dms-go/internal/dms"
	"dms-go/internal/model"
	"dms-go/internal/session"
	"dms-go/internal/storage"
)

// AdminUser returns a user holding the admin role.
func AdminUser() model.User {
	return model.User{ID: 1, Username: "admin", Email: "admin@example.com", Role: model.RoleAdmin}
}

// RegularUser returns a user holding the user role.
func RegularUser() model.User {
	return model.User{ID: 2, Username: "alice", Email: "alice@example.com", Role: model.RoleUser}
}

// NewTestSessionStore creates a session store over in-memory storage.
func NewTestSessionStore(nav dms.Navigator, clock dms.Clock) (*session.Store, *storage.MemoryStorage) {
	mem := storage.NewMemoryStorage()
	return session.NewStore(mem, nav, clock, nil), mem
}

// SignIn stores a session for user with an opaque token.
func SignIn(t *testing.T, store dms.SessionStore, user model.User) model.Session {
	t.Helper()
	s := model.Session{Token: "token-" + user.Username, User: user}
	if err := store.Save(s); err != nil {
		t.Fatalf("saving session: %v", err)
	}
	return s
}

// Harness bundles the collaborators of a controller under test.
type Harness struct {
	Gateway   *FakeGateway
	Navigator *RecordingNavigator
	Clock     *StubClock
	Sessions  *session.Store
	Storage   *storage.MemoryStorage
}

// NewHarness creates a harness with no session stored.
func NewHarness() *Harness {
	nav := NewRecordingNavigator()
	clock := FixedClock()
	store, mem := NewTestSessionStore(nav, clock)
	return &Harness{
		Gateway:   NewFakeGateway(),
		Navigator: nav,
		Clock:     clock,
		Sessions:  store,
		Storage:   mem,
	}
}

// Deps returns controller dependencies wired to the harness.
func (h *Harness) Deps() dms.Deps {
	return dms.Deps{
		Sessions:  h.Sessions,
		Gateway:   h.Gateway,
		Navigator: h.Navigator,
		Clock:     h.Clock,
		Logger:    dms.NewNopLogger(),
		Timing:    dms.DefaultTiming,
	}
}
