package storage

import (
	"testing"
	"time"
)

func TestGenerateRunFolderPath(t *testing.T) {
	timestamp := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	got := GenerateRunFolderPath(timestamp)
	want := "2026/03/14/AnalyticsRun-2026-03-14-15-09-26"
	if got != want {
		t.Errorf("Expected folder path '%s', got '%s'", want, got)
	}
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"analytics_report.json", "application/json"},
		{"report.html", "text/html"},
		{"value_histogram.png", "image/png"},
		{"notes.md", "text/markdown"},
		{"summary.txt", "text/plain"},
		{"styles.css", "text/css"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"chart.svg", "image/svg+xml"},
		{"data.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := GetContentType(tt.filename); got != tt.want {
			t.Errorf("GetContentType(%s): expected '%s', got '%s'", tt.filename, tt.want, got)
		}
	}
}
