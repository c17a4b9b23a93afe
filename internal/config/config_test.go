package config

import (
	"context"
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		validate    func(*Config)
	}{
		{
			name:        "defaults",
			envVars:     map[string]string{},
			expectError: false,
			validate: func(cfg *Config) {
				if cfg.Port != "8981" {
					t.Errorf("Expected default Port to be '8981', got '%s'", cfg.Port)
				}
				if cfg.RunMode != "once" {
					t.Errorf("Expected default RunMode to be 'once', got '%s'", cfg.RunMode)
				}
				if cfg.UseMockData != false {
					t.Errorf("Expected default UseMockData to be false, got %v", cfg.UseMockData)
				}
				if cfg.MockSeed != 42 {
					t.Errorf("Expected default MockSeed to be 42, got %d", cfg.MockSeed)
				}
				if cfg.MockRecords != 100 {
					t.Errorf("Expected default MockRecords to be 100, got %d", cfg.MockRecords)
				}
				if cfg.OutputDir != "./output" {
					t.Errorf("Expected default OutputDir to be './output', got '%s'", cfg.OutputDir)
				}
				if cfg.HistogramBins != 30 {
					t.Errorf("Expected default HistogramBins to be 30, got %d", cfg.HistogramBins)
				}
				if cfg.TopNSize != 5 {
					t.Errorf("Expected default TopNSize to be 5, got %d", cfg.TopNSize)
				}
				if cfg.StorageBackend != "local" {
					t.Errorf("Expected default StorageBackend to be 'local', got '%s'", cfg.StorageBackend)
				}
				if cfg.LogLevel != "info" {
					t.Errorf("Expected default LogLevel to be 'info', got '%s'", cfg.LogLevel)
				}
			},
		},
		{
			name: "custom configuration values",
			envVars: map[string]string{
				"PORT":            "9000",
				"RUN_MODE":        "serve",
				"USE_MOCK_DATA":   "true",
				"MOCK_SEED":       "7",
				"MOCK_RECORDS":    "500",
				"OUTPUT_DIR":      "/custom/output",
				"HISTOGRAM_BINS":  "20",
				"TOP_N_SIZE":      "10",
				"STORAGE_BACKEND": "local",
			},
			expectError: false,
			validate: func(cfg *Config) {
				if cfg.Port != "9000" {
					t.Errorf("Expected Port to be '9000', got '%s'", cfg.Port)
				}
				if cfg.RunMode != "serve" {
					t.Errorf("Expected RunMode to be 'serve', got '%s'", cfg.RunMode)
				}
				if !cfg.UseMockData {
					t.Errorf("Expected UseMockData to be true, got %v", cfg.UseMockData)
				}
				if cfg.MockSeed != 7 {
					t.Errorf("Expected MockSeed to be 7, got %d", cfg.MockSeed)
				}
				if cfg.MockRecords != 500 {
					t.Errorf("Expected MockRecords to be 500, got %d", cfg.MockRecords)
				}
				if cfg.OutputDir != "/custom/output" {
					t.Errorf("Expected OutputDir to be '/custom/output', got '%s'", cfg.OutputDir)
				}
				if cfg.HistogramBins != 20 {
					t.Errorf("Expected HistogramBins to be 20, got %d", cfg.HistogramBins)
				}
				if cfg.TopNSize != 10 {
					t.Errorf("Expected TopNSize to be 10, got %d", cfg.TopNSize)
				}
			},
		},
		{
			name: "gcs backend requires bucket",
			envVars: map[string]string{
				"STORAGE_BACKEND": "gcs",
			},
			expectError: true,
		},
		{
			name: "gcs backend with bucket",
			envVars: map[string]string{
				"STORAGE_BACKEND": "gcs",
				"GCS_BUCKET":      "test-bucket",
			},
			expectError: false,
			validate: func(cfg *Config) {
				if cfg.GCSBucket != "test-bucket" {
					t.Errorf("Expected GCSBucket to be 'test-bucket', got '%s'", cfg.GCSBucket)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}
			defer clearConfigEnv(t)

			cfg, err := Load(context.Background())

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(cfg)
			}
		})
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "RUN_MODE", "API_BASE_URL", "API_GRID_ENDPOINT", "API_METRICS_ENDPOINT",
		"REQUEST_TIMEOUT", "HEALTH_TIMEOUT", "USE_MOCK_DATA", "MOCK_SEED", "MOCK_RECORDS",
		"OUTPUT_DIR", "HISTOGRAM_BINS", "TOP_N_SIZE", "STORAGE_BACKEND", "GCS_BUCKET",
		"ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		os.Unsetenv(key)
	}
}

func TestGetVersion(t *testing.T) {
	os.Setenv("APP_VERSION", "9.9.9")
	defer os.Unsetenv("APP_VERSION")

	if v := GetVersion(); v != "9.9.9" {
		t.Errorf("Expected version '9.9.9', got '%s'", v)
	}
}
