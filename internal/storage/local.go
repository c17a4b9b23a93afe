package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LocalStorageClient handles local file system storage operations
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStorageClient{
		baseDir: baseDir,
	}, nil
}

// Close is a no-op for local storage (implements same interface as GCSClient)
func (l *LocalStorageClient) Close() error {
	return nil
}

// BaseDir returns the root directory artifacts are written under
func (l *LocalStorageClient) BaseDir() string {
	return l.baseDir
}

// StoreFile stores an artifact locally in the run folder for timestamp
func (l *LocalStorageClient) StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error {
	filePath := filepath.Join(l.baseDir, GenerateRunFolderPath(timestamp), filename)

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(filePath, fileData, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return nil
}

// GetFile retrieves any file from local storage
func (l *LocalStorageClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// ListRuns lists recent analysis runs from local storage, newest first.
// A run is identified by its report.html file.
func (l *LocalStorageClient) ListRuns(ctx context.Context, limit int) ([]string, error) {
	var runPaths []string

	err := filepath.Walk(l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors and continue
		}

		if info.Name() == "report.html" {
			relPath, _ := filepath.Rel(l.baseDir, path)
			runPaths = append(runPaths, filepath.ToSlash(relPath))
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk output directory: %w", err)
	}

	// Folder names embed the run timestamp, so a reverse sort is newest first
	sort.Strings(runPaths)
	for i, j := 0, len(runPaths)-1; i < j; i, j = i+1, j-1 {
		runPaths[i], runPaths[j] = runPaths[j], runPaths[i]
	}

	if limit > 0 && limit < len(runPaths) {
		runPaths = runPaths[:limit]
	}

	return runPaths, nil
}
