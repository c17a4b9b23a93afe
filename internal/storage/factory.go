package storage

import (
	"context"
	"fmt"

	"omnigrid/internal/config"
)

// Backend represents the artifact storage backend
type Backend string

const (
	BackendLocal Backend = "local"
	BackendGCS   Backend = "gcs"
)

// NewStorageClient creates a storage client based on the configured backend
func NewStorageClient(ctx context.Context, backend Backend, cfg *config.Config) (StorageClient, error) {
	switch backend {
	case BackendLocal:
		outputDir := cfg.OutputDir
		if outputDir == "" {
			outputDir = "output" // Default fallback
		}

		localClient, err := NewLocalStorageClient(outputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case BackendGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
