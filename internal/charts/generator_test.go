package charts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"omnigrid/internal/analytics"
	"omnigrid/internal/mockdata"
)

func TestGenerateAll(t *testing.T) {
	outputDir := t.TempDir()

	gen := mockdata.NewGeneratorAt(42, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	eng := analytics.NewEngine(gen.GridRecords(80))
	series := gen.TimeSeries(30)

	files := NewChartGenerator(outputDir).GenerateAll(eng, series, 10)

	want := []string{
		"category_distribution.png",
		"region_distribution.png",
		"line_trend.png",
		"value_by_status.png",
		"value_vs_score.png",
		"value_histogram.png",
		"correlation_heatmap.png",
	}
	if len(files) != len(want) {
		t.Errorf("Expected %d chart files, got %d: %v", len(want), len(files), files)
	}

	for _, name := range want {
		path := filepath.Join(outputDir, name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("Expected chart file %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("Chart file %s is empty", name)
		}
	}
}

func TestGenerateAll_EmptyRecords(t *testing.T) {
	outputDir := t.TempDir()

	eng := analytics.NewEngine(nil)
	files := NewChartGenerator(outputDir).GenerateAll(eng, nil, 10)

	if len(files) != 0 {
		t.Errorf("Expected no chart files for empty records, got %v", files)
	}
}

func TestBarChart(t *testing.T) {
	outputDir := t.TempDir()
	cg := NewChartGenerator(outputDir)

	path, err := cg.BarChart(map[string]float64{"A": 10, "B": 20}, "Totals", "Category", "Value", "totals.png")
	if err != nil {
		t.Fatalf("BarChart failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected bar chart file: %v", err)
	}
}

func TestPieChart(t *testing.T) {
	outputDir := t.TempDir()
	cg := NewChartGenerator(outputDir)

	path, err := cg.PieChart(map[string]int{"North": 3, "South": 7}, "Regions", "regions.png")
	if err != nil {
		t.Fatalf("PieChart failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected pie chart file: %v", err)
	}
}
