package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dms-go/internal/dms"
)

// OSFilePicker is the real filesystem implementation of dms.FilePicker.
type OSFilePicker struct {
	accept *AcceptMatcher
}

// NewOSFilePicker creates a file picker that accepts the given extensions or
// patterns. An empty list accepts every regular file.
func NewOSFilePicker(accept []string) *OSFilePicker {
	return &OSFilePicker{accept: NewAcceptMatcher(accept)}
}

// Resolve validates a raw path and returns a Path object.
func (m *OSFilePicker) Resolve(rawPath string) (*dms.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	mode := info.Mode()
	if mode.IsDir() {
		return nil, fmt.Errorf("directories cannot be uploaded: %s", absPath)
	}
	if !mode.IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", absPath)
	}
	if !m.accept.Match(absPath) {
		return nil, fmt.Errorf("file type not accepted: %s (accepted: %s)", filepath.Base(absPath), m.accept)
	}

	return dms.NewPath(absPath, info), nil
}

// Open opens a file for reading.
func (m *OSFilePicker) Open(path *dms.Path) (io.ReadCloser, error) {
	return os.Open(path.String())
}

// Compile-time check that OSFilePicker implements dms.FilePicker interface
var _ dms.FilePicker = (*OSFilePicker)(nil)
