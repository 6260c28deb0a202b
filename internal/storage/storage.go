// Package storage defines the key-value port the library and theme
// collaborators persist through, plus its adapters.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// Store is a string key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Backend names accepted by Open
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Default file names inside the data directory
const (
	FileStoreName   = "store.json"
	SQLiteStoreName = "luma.db"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("store is closed")

// Open opens the named backend rooted at dataDir
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return NewFileStore(filepath.Join(dataDir, FileStoreName))
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dataDir, SQLiteStoreName))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want json, sqlite or memory)", backend)
	}
}

// Copy writes every key of src into dst and returns how many were copied.
// Existing keys in dst are overwritten.
func Copy(ctx context.Context, dst, src Store) (int, error) {
	keys, err := src.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}

	n := 0
	for _, key := range keys {
		value, ok, err := src.Get(ctx, key)
		if err != nil {
			return n, fmt.Errorf("failed to read %q: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := dst.Set(ctx, key, value); err != nil {
			return n, fmt.Errorf("failed to write %q: %w", key, err)
		}
		n++
	}
	return n, nil
}
