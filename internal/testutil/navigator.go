package testutil

import (
	"sync"

	"dms-go/internal/dms"
)

// RecordingNavigator records every navigation instead of performing it.
type RecordingNavigator struct {
	mu     sync.Mutex
	routes []dms.Route
}

var _ dms.Navigator = (*RecordingNavigator)(nil)

func NewRecordingNavigator() *RecordingNavigator {
	return &RecordingNavigator{}
}

func (n *RecordingNavigator) Navigate(to dms.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, to)
}

// Routes returns all navigations in order.
func (n *RecordingNavigator) Routes() []dms.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]dms.Route(nil), n.routes...)
}

// Last returns the most recent navigation, or "" if there was none.
func (n *RecordingNavigator) Last() dms.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}
