// Package storage provides the durable key-value medium behind the survey
// record. Every backend stores opaque bytes under a string key.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// KV is a durable single-namespace key-value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile    = "file"
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
	BackendMemory  = "memory"
)

// Config selects and locates a backend.
type Config struct {
	Backend string
	// Path is a directory for file and keyring, a database file for sqlite.
	Path string
	// Service names the keyring service.
	Service string
}

// Open returns the backend described by cfg.
func Open(cfg Config) (KV, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return NewFileKV(cfg.Path)
	case BackendSQLite:
		return NewSQLiteKV(cfg.Path)
	case BackendKeyring:
		return OpenKeyringKV(cfg.Service, cfg.Path)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
