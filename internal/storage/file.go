package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"dms-go/internal/dms"
)

// FileStorage persists items as a TOML table in a single file, passed
// through an Encryptor on the way to and from disk. The file is read on
// every access so that changes made by another command are visible.
type FileStorage struct {
	path      string
	encryptor dms.Encryptor

	mu sync.Mutex
}

var _ dms.Storage = (*FileStorage)(nil)

// NewFileStorage creates a FileStorage at path. The file is created lazily
// on the first write.
func NewFileStorage(path string, encryptor dms.Encryptor) *FileStorage {
	return &FileStorage{path: path, encryptor: encryptor}
}

func (s *FileStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (s *FileStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	items[key] = value
	return s.store(items)
}

func (s *FileStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return s.store(items)
}

func (s *FileStorage) Close() error { return nil }

func (s *FileStorage) load() (map[string]string, error) {
	items := make(map[string]string)

	sealed, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var plain bytes.Buffer
	if err := s.encryptor.Decrypt(bytes.NewReader(sealed), &plain); err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", s.path, err)
	}
	if _, err := toml.NewDecoder(&plain).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	return items, nil
}

// store replaces the file atomically via a temporary file in the same directory.
func (s *FileStorage) store(items map[string]string) error {
	var plain bytes.Buffer
	if err := toml.NewEncoder(&plain).Encode(items); err != nil {
		return fmt.Errorf("encoding storage: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating storage directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".storage-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := s.encryptor.Encrypt(&plain, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("encrypting storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
