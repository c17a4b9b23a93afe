package storage

import (
	"context"
	"time"
)

// StorageClient defines the interface for storing and retrieving run artifacts
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores an artifact in the run folder derived from timestamp
	StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error

	// GetFile retrieves a file from the specified path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListRuns lists recent analysis runs, newest first
	ListRuns(ctx context.Context, limit int) ([]string, error)
}
