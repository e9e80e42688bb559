package sink

import (
	"context"
	"fmt"

	"dms-go/internal/config"
	"dms-go/internal/dms"
)

// NewSinkFromConfig creates a Sink implementation based on the downloads config type.
func NewSinkFromConfig(ctx context.Context, cfg config.DownloadsConfig) (dms.Sink, error) {
	switch cfg.Type {
	case "memory":
		return NewMemorySink(), nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 downloads require s3_bucket to be set")
		}
		s, err := NewS3SinkFromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "filesystem", "":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("filesystem downloads require dir to be set")
		}
		s, err := NewFileSystemSink(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown downloads type: %s", cfg.Type)
	}
}
