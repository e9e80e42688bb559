package dms

import (
	"errors"
	"fmt"
)

var (
	// ErrRedirected is returned when a controller short-circuits because it
	// navigated away (no session, or insufficient role).
	ErrRedirected = errors.New("redirected")

	// ErrTransport marks a request that could not complete.
	ErrTransport = errors.New("transport failure")

	// ErrDeleteDisabled is returned when deleting a category that still holds documents.
	ErrDeleteDisabled = errors.New("category contains documents")

	// ErrNotMounted is returned by controller actions invoked before Mount or after Unmount.
	ErrNotMounted = errors.New("controller is not mounted")

	// ErrNoSelection is returned when an action names a record that is not in the fetched list.
	ErrNoSelection = errors.New("no such item")
)

// RemoteError is a failure reported by the API server with a non-2xx status.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
}

// ValidationError is a client-side check that failed before any request was made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UserMessage returns the text to show for err. Server messages and
// validation failures are shown verbatim; anything else gets fallback.
func UserMessage(err error, fallback string) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		return invalid.Message
	}
	return fallback
}
