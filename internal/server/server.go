// Package server exposes the HTTP surface: health checks, on-demand
// analysis runs, run listings, and artifact file serving.
package server

import (
	"net/http"
	"sync"

	"omnigrid/internal/config"
	"omnigrid/internal/logger"
	"omnigrid/internal/pipeline"
	"omnigrid/internal/storage"
)

// Server represents the main application server
type Server struct {
	Config   *config.Config
	Pipeline *pipeline.Pipeline
	Storage  storage.StorageClient

	runMutex sync.Mutex
	log      *logger.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, store storage.StorageClient) *Server {
	return &Server{
		Config:   cfg,
		Pipeline: pipeline.New(cfg, store),
		Storage:  store,
		log:      logger.Global().WithComponent("server"),
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/run", s.HandleRun)
	mux.HandleFunc("/runs", s.HandleListRuns)
	mux.HandleFunc("/files/", s.HandleFileProxy)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
