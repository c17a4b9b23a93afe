package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"omnigrid/internal/config"
	"omnigrid/internal/storage"
)

func testServer(t *testing.T) (*Server, *storage.LocalStorageClient) {
	t.Helper()
	cfg := &config.Config{
		APIBaseURL:      "http://127.0.0.1:1",
		GridEndpoint:    "grid",
		MetricsEndpoint: "metrics",
		RequestTimeout:  5 * time.Second,
		HealthTimeout:   time.Second,
		UseMockData:     true,
		MockSeed:        42,
		MockRecords:     30,
		OutputDir:       t.TempDir(),
		HistogramBins:   10,
		TopNSize:        5,
		StorageBackend:  "local",
	}
	store, err := storage.NewLocalStorageClient(cfg.OutputDir)
	if err != nil {
		t.Fatalf("Failed to create local storage: %v", err)
	}
	return NewServer(cfg, store), store
}

func TestHandleHealth(t *testing.T) {
	srv, _ := testServer(t)
	defer srv.Close()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.HandleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Health response is not valid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", body["status"])
	}
}

func TestHandleHealth_MethodNotAllowed(t *testing.T) {
	srv, _ := testServer(t)
	defer srv.Close()

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	srv.HandleHealth(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestHandleRun_RequiresPost(t *testing.T) {
	srv, _ := testServer(t)
	defer srv.Close()

	req := httptest.NewRequest(http.MethodGet, "/run", nil)
	rec := httptest.NewRecorder()
	srv.HandleRun(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestHandleRunAndListRuns(t *testing.T) {
	srv, _ := testServer(t)
	defer srv.Close()

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	rec := httptest.NewRecorder()
	srv.HandleRun(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 from /run, got %d: %s", rec.Code, rec.Body.String())
	}

	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Run response is not valid JSON: %v", err)
	}
	if result["source"] != "mock" {
		t.Errorf("Expected source 'mock', got %v", result["source"])
	}

	listReq := httptest.NewRequest(http.MethodGet, "/runs", nil)
	listRec := httptest.NewRecorder()
	srv.HandleListRuns(listRec, listReq)

	if listRec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 from /runs, got %d", listRec.Code)
	}

	var listing map[string]interface{}
	if err := json.Unmarshal(listRec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("Runs response is not valid JSON: %v", err)
	}
	if listing["count"].(float64) != 1 {
		t.Errorf("Expected 1 run, got %v", listing["count"])
	}
}

func TestHandleFileProxy(t *testing.T) {
	srv, store := testServer(t)
	defer srv.Close()

	timestamp := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	if err := store.StoreFile(context.Background(), []byte(`{"ok":true}`), "analytics_report.json", timestamp); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}

	path := "/files/" + storage.GenerateRunFolderPath(timestamp) + "/analytics_report.json"
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.HandleFileProxy(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestHandleFileProxy_Traversal(t *testing.T) {
	srv, _ := testServer(t)
	defer srv.Close()

	req := httptest.NewRequest(http.MethodGet, "/files/../secrets.txt", nil)
	req.URL.Path = "/files/../secrets.txt"
	rec := httptest.NewRecorder()
	srv.HandleFileProxy(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for traversal path, got %d", rec.Code)
	}
}

func TestHandleFileProxy_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	defer srv.Close()

	req := httptest.NewRequest(http.MethodGet, "/files/2026/01/01/AnalyticsRun-x/missing.json", nil)
	rec := httptest.NewRecorder()
	srv.HandleFileProxy(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestHandleRoot(t *testing.T) {
	srv, store := testServer(t)
	defer srv.Close()

	// No runs yet: landing page
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.HandleRoot(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 landing page, got %d", rec.Code)
	}

	// With a run: redirect to its report
	timestamp := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	if err := store.StoreFile(context.Background(), []byte("<html></html>"), "report.html", timestamp); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}

	rec = httptest.NewRecorder()
	srv.HandleRoot(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", rec.Code)
	}
	want := "/files/" + storage.GenerateRunFolderPath(timestamp) + "/report.html"
	if loc := rec.Header().Get("Location"); loc != want {
		t.Errorf("Expected redirect to '%s', got '%s'", want, loc)
	}
}
