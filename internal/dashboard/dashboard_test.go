package dashboard

import (
	"os"
	"strings"
	"testing"
	"time"

	"omnigrid/internal/analytics"
	"omnigrid/internal/mockdata"
)

func TestBuild(t *testing.T) {
	outputDir := t.TempDir()

	gen := mockdata.NewGeneratorAt(42, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	eng := analytics.NewEngine(gen.GridRecords(80))

	path, err := NewBuilder(outputDir).Build(eng, 10, "interactive_dashboard.html")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read dashboard file: %v", err)
	}

	html := string(content)
	for _, want := range []string{
		"Omni-Grid Data Dashboard",
		"Value Distribution",
		"Category vs Value",
		"Score Distribution by Category",
		"Region Analysis",
		"echarts",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected dashboard HTML to contain %q", want)
		}
	}
}

func TestBuild_EmptyRecords(t *testing.T) {
	outputDir := t.TempDir()

	eng := analytics.NewEngine(nil)
	if _, err := NewBuilder(outputDir).Build(eng, 10, "dashboard.html"); err == nil {
		t.Error("Expected error when no panels can be built")
	}
}
