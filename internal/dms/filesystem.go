package dms

import "io"

// FilePicker selects local files for upload.
// It abstracts file access so controllers can be tested without touching the real filesystem.
type FilePicker interface {
	// Resolve validates a raw path and returns a Path.
	// The path must exist and be a regular file with an accepted extension.
	Resolve(rawPath string) (*Path, error)

	// Open opens the selected file for reading.
	Open(path *Path) (io.ReadCloser, error)
}
