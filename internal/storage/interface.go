package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a file does not exist
var ErrNotFound = errors.New("storage: file not found")

// ErrInvalidPath is returned for paths that leave the storage root
var ErrInvalidPath = errors.New("storage: invalid path")

// Client stores exported panel artifacts
type Client interface {
	// Close releases the client
	Close() error

	// StoreFile writes data at path, creating parents as needed
	StoreFile(ctx context.Context, path string, data []byte) error

	// GetFile reads the file at path
	GetFile(ctx context.Context, path string) ([]byte, error)

	// ListDir lists the files under dir, relative to the storage root
	ListDir(ctx context.Context, dir string) ([]string, error)

	// FileExists reports whether path exists
	FileExists(ctx context.Context, path string) (bool, error)
}
