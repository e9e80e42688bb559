package dms

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Path is a validated local file selected for upload.
// Path objects are created by FilePicker.Resolve, which checks the path
// exists and is a regular file and caches its stat info.
type Path struct {
	absPath string
	info    fs.FileInfo
}

// NewPath creates a Path from its components.
// This is primarily for use by FilePicker implementations.
func NewPath(absPath string, info fs.FileInfo) *Path {
	return &Path{absPath: absPath, info: info}
}

// String returns the absolute path.
func (p *Path) String() string {
	return p.absPath
}

// Name returns the base file name.
func (p *Path) Name() string {
	return filepath.Base(p.absPath)
}

// Size returns the cached file size in bytes.
func (p *Path) Size() int64 {
	if p.info == nil {
		return 0
	}
	return p.info.Size()
}

// Info returns the cached file info from when the path was resolved.
func (p *Path) Info() fs.FileInfo {
	return p.info
}

// DefaultTitle derives a document title from the file name by dropping the
// final extension. Names without an extension are returned whole.
func DefaultTitle(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
