// Package kv provides the persistent string-keyed store used for cached
// timings, the saved location, and user preferences.
//
// Every backend satisfies the same small contract: Get returns ErrNotFound for
// a missing key, Set overwrites, and Remove of a missing key is not an error.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a persistent string-keyed store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backends lists the backend names in display order.
var Backends = []string{BackendFile, BackendSQLite, BackendRedis, BackendMemory}

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Path is the directory for the file backend or the database file for
	// the sqlite backend. Empty means the default cache directory.
	Path string
	// RedisAddr is host:port of the Redis server.
	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	// Prefix namespaces keys in shared backends (redis).
	Prefix string
}

// Open creates the store described by opts. An empty backend means "file".
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.Path)
	case BackendSQLite:
		path := opts.Path
		if path == "" {
			dir, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "store.db")
		}
		return OpenSQLite(path)
	case BackendRedis:
		return OpenRedis(ctx, opts)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q; valid backends: %s", opts.Backend, strings.Join(Backends, ", "))
	}
}
