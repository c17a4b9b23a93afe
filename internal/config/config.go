package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the omni-grid analytics service
type Config struct {
	// Server configuration (serve mode only)
	Port string `env:"PORT,default=8981"`

	// Run mode: "once" runs a single analysis and exits,
	// "serve" starts the HTTP server
	RunMode string `env:"RUN_MODE,default=once"`

	// Omni-Grid API configuration
	APIBaseURL      string        `env:"API_BASE_URL,default=https://omni-grid-2-0-architect-256533412071.us-west1.run.app"`
	GridEndpoint    string        `env:"API_GRID_ENDPOINT,default=grid"`
	MetricsEndpoint string        `env:"API_METRICS_ENDPOINT,default=metrics"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,default=30s"`
	HealthTimeout   time.Duration `env:"HEALTH_TIMEOUT,default=5s"`

	// Mock data configuration
	UseMockData bool  `env:"USE_MOCK_DATA,default=false"`
	MockSeed    int64 `env:"MOCK_SEED,default=42"`
	MockRecords int   `env:"MOCK_RECORDS,default=100"`

	// Output configuration
	OutputDir     string `env:"OUTPUT_DIR,default=./output"`
	HistogramBins int    `env:"HISTOGRAM_BINS,default=30"`
	TopNSize      int    `env:"TOP_N_SIZE,default=5"`

	// Storage backend: "local" or "gcs"
	StorageBackend string `env:"STORAGE_BACKEND,default=local"`
	GCSBucket      string `env:"GCS_BUCKET"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.StorageBackend == "gcs" && cfg.GCSBucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET is required when STORAGE_BACKEND=gcs")
	}
	return &cfg, nil
}
