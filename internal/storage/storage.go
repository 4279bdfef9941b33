// Package storage provides the key-value stores the board is persisted in.
package storage

import (
	"context"
	"fmt"
)

// Store is an opaque string key-value store
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// Options selects and configures a backend
type Options struct {
	Backend    string
	DataDir    string
	SQLitePath string
	S3         S3Options
}

// Open creates the store selected by opts.Backend
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)

	switch opts.Backend {
	case BackendFile, "":
		store, err = openFile(opts.DataDir)
	case BackendSQLite:
		store, err = openSQLite(ctx, opts.SQLitePath)
	case BackendS3:
		store, err = openS3(ctx, opts.S3)
	case BackendMemory:
		store = NewMemoryStore()
	default:
		err = fmt.Errorf("unknown storage backend %q", opts.Backend)
	}

	if err != nil {
		return nil, err
	}
	return store, nil
}

// The wrappers below keep typed nil pointers out of the Store interface.

func openFile(dir string) (Store, error) {
	s, err := NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openSQLite(ctx context.Context, path string) (Store, error) {
	s, err := NewSQLiteStore(ctx, path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openS3(ctx context.Context, opts S3Options) (Store, error) {
	s, err := NewS3Store(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}
