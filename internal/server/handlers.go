package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"omnigrid/internal/storage"
)

// HandleRoot redirects to the latest report, or shows a landing page when
// no runs exist yet
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	latestURL, err := s.findLatestReportURL(r.Context())
	if err != nil {
		s.serveInitialPage(w)
		return
	}

	w.Header().Set("Location", latestURL)
	w.WriteHeader(http.StatusFound)
}

// serveInitialPage shows a landing page when no reports are available
func (s *Server) serveInitialPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<html><body><h1>Omni-Grid Analytics</h1><p>No reports yet. POST /run to start an analysis run.</p></body></html>`)
}

// HandleHealth provides the health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"storage": "ok",
			"config":  "ok",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleRun triggers a new analysis run (HTTP handler)
func (s *Server) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Only one run at a time
	if !s.runMutex.TryLock() {
		s.log.Warn("Analysis run already in progress, rejecting new request")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "Analysis run already in progress",
			"status": "conflict",
		})
		return
	}
	defer s.runMutex.Unlock()

	s.log.Info("Starting analysis run via HTTP")

	result, err := s.Pipeline.Run(r.Context())
	if err != nil {
		s.log.Error("Analysis run failed", err)
		http.Error(w, "Analysis run failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// HandleFileProxy serves run artifacts from local storage or GCS
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}

	// Security check: prevent directory traversal
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	fileData, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		s.log.Warnf("Failed to get file from storage: %v", err)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(fileData)
}

// HandleListRuns lists recent analysis runs
func (s *Server) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Limit from query parameter (default 10, capped at 100)
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
		if limit > 100 {
			limit = 100
		}
	}

	runs, err := s.Storage.ListRuns(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list runs", err)
		http.Error(w, "Failed to list runs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"runs":      runs,
		"count":     len(runs),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// findLatestReportURL finds the URL of the most recent report
func (s *Server) findLatestReportURL(ctx context.Context) (string, error) {
	runs, err := s.Storage.ListRuns(ctx, 1)
	if err != nil || len(runs) == 0 {
		return "", fmt.Errorf("no runs available")
	}
	return fmt.Sprintf("/files/%s", runs[0]), nil
}
