package store

import (
	"fmt"
	"log/slog"
)

const (
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

// BackendType selects the persistence backend.
type BackendType string

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case FileBackend, SQLiteBackend:
		return true
	}
	return false
}

// Config holds what a backend needs to open.
type Config struct {
	Type BackendType

	// File backend
	DataDirectory string

	// SQLite backend
	SQLiteDBPath string
}

// Open creates the configured store backend.
func Open(cfg Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Type {
	case FileBackend:
		s, err := NewFileStore(cfg.DataDirectory)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		logger.Info("Initialized file store", "data_directory", cfg.DataDirectory)
		return s, nil
	case SQLiteBackend:
		s, err := NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite store", "db_path", cfg.SQLiteDBPath)
		return s, nil
	default:
		return nil, fmt.Errorf("invalid store backend: %q", cfg.Type)
	}
}
