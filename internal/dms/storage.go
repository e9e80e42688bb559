package dms

// Storage is the process-wide key/value store that persists client state
// between commands. Every value is an opaque string.
type Storage interface {
	// GetItem returns the value stored under key and whether it was present.
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error

	// Close releases the underlying medium.
	Close() error
}
