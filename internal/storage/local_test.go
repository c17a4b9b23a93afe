package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewLocalStorageClient(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "output")

	client, err := NewLocalStorageClient(baseDir)
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	defer client.Close()

	if client.BaseDir() != baseDir {
		t.Errorf("Expected baseDir to be '%s', got '%s'", baseDir, client.BaseDir())
	}

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		t.Error("Base directory was not created")
	}
}

func TestLocalStorageClient_StoreAndGetFile(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	timestamp := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	content := []byte(`{"status":"ok"}`)

	if err := client.StoreFile(ctx, content, "analytics_report.json", timestamp); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}

	folder := GenerateRunFolderPath(timestamp)
	got, err := client.GetFile(ctx, folder+"/analytics_report.json")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("Expected file content '%s', got '%s'", content, got)
	}
}

func TestLocalStorageClient_ListRuns(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	timestamps := []time.Time{
		time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 3, 10, 0, 0, 0, time.UTC),
	}
	for _, ts := range timestamps {
		if err := client.StoreFile(ctx, []byte("<html></html>"), "report.html", ts); err != nil {
			t.Fatalf("StoreFile failed: %v", err)
		}
	}

	runs, err := client.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Newest first
	want := GenerateRunFolderPath(timestamps[2]) + "/report.html"
	if runs[0] != want {
		t.Errorf("Expected newest run '%s' first, got '%s'", want, runs[0])
	}

	limited, err := client.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns with limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 run with limit 1, got %d", len(limited))
	}
}

func TestLocalStorageClient_GetFileMissing(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create LocalStorageClient: %v", err)
	}
	defer client.Close()

	if _, err := client.GetFile(context.Background(), "no/such/file.json"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
