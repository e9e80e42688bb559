package sink

import (
	"context"
	"fmt"
	"io"
	"sync"

	"dms-go/internal/dms"
)

// MemorySink keeps downloads in memory. Saving the same name twice replaces it.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

var _ dms.Sink = (*MemorySink)(nil)

func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

func (s *MemorySink) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading download: %w", err)
	}
	name = safeName(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = data
	return "memory://" + name, nil
}

// Get returns the saved content for name.
func (s *MemorySink) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}
