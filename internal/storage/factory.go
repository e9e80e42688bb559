package storage

import (
	"fmt"

	"dms-go/internal/config"
	"dms-go/internal/dms"
)

// NewStorageFromConfig creates a Storage implementation based on the storage config type.
// The encryptor only applies to the file backend.
func NewStorageFromConfig(cfg config.StorageConfig, encryptor dms.Encryptor) (dms.Storage, error) {
	switch cfg.Type {
	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("path required for file storage")
		}
		return NewFileStorage(cfg.Path, encryptor), nil
	case "sqlite":
		if cfg.Path == "" {
			return nil, fmt.Errorf("path required for sqlite storage")
		}
		s, err := NewSQLiteStorage(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}
