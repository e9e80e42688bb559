package testutil

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"dms-go/internal/dms"
)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Content     []byte
	ModTime     time.Time
	IsDirectory bool
}

// MockFilePicker is an in-memory file picker for testing.
type MockFilePicker struct {
	files map[string]*MockFile
}

var _ dms.FilePicker = (*MockFilePicker)(nil)

// NewMockFilePicker creates a new mock file picker.
func NewMockFilePicker() *MockFilePicker {
	return &MockFilePicker{files: make(map[string]*MockFile)}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFilePicker) AddFile(path string, content []byte) {
	m.files[path] = &MockFile{Content: content, ModTime: time.Now()}
}

// AddDirectory adds a directory to the mock filesystem.
func (m *MockFilePicker) AddDirectory(path string) {
	m.files[path] = &MockFile{ModTime: time.Now(), IsDirectory: true}
}

func (m *MockFilePicker) Resolve(rawPath string) (*dms.Path, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, err
	}

	file, ok := m.files[absPath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", absPath)
	}
	if file.IsDirectory {
		return nil, fmt.Errorf("not a regular file: %s", absPath)
	}

	info := &mockFileInfo{
		name:    filepath.Base(absPath),
		size:    int64(len(file.Content)),
		modTime: file.ModTime,
	}
	return dms.NewPath(absPath, info), nil
}

func (m *MockFilePicker) Open(path *dms.Path) (io.ReadCloser, error) {
	file, ok := m.files[path.String()]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path.String())
	}
	return io.NopCloser(bytes.NewReader(file.Content)), nil
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return 0644 }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return false }
func (m *mockFileInfo) Sys() any           { return nil }
