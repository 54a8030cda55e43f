package storage

import (
	"fmt"

	"github.com/bassista/mermaider/internal/config"
	"github.com/containerd/errdefs"
)

// NewFromConfig creates the KeyValueStore selected by cfg.Backend.
// BackendNone yields a nil store: callers treat it as storage being unavailable.
func NewFromConfig(cfg config.StorageConfig) (KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		s, err := NewFileStore(cfg.Dir, WithDebounce(cfg.WatchDebounce))
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite:
		s, err := OpenSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: %s, %s, %s, %s): %w",
			cfg.Backend, config.BackendFile, config.BackendSQLite, config.BackendMemory, config.BackendNone,
			errdefs.ErrInvalidArgument)
	}
}
