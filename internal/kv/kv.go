// Package kv provides the durable key-value stores the task list is persisted in.
package kv

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is a durable string-keyed blob store.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// Path returns the filesystem path that changes when a value is written,
	// or "" when the store has no on-disk presence.
	Path() string
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the valid backend names.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// Open returns the store for backend rooted at path. For the file backend
// path is a directory; for sqlite it is the database file.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
