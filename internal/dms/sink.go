package dms

import (
	"context"
	"io"
)

// Sink is where downloaded document bodies are saved.
type Sink interface {
	// Save writes the content read from r under name and returns a
	// human-readable location of the saved file.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
