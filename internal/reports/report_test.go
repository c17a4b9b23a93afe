package reports

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"omnigrid/internal/analytics"
	"omnigrid/internal/logger"
	"omnigrid/internal/mockdata"
)

func testEngine() *analytics.Engine {
	gen := mockdata.NewGeneratorAt(42, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	return analytics.NewEngine(gen.GridRecords(50))
}

func TestBuildAndWriteJSON(t *testing.T) {
	outputDir := t.TempDir()
	rb := NewReportBuilder(outputDir, logger.Global())

	report := rb.Build(testEngine(), "mock", 5)

	if report.Source != "mock" {
		t.Errorf("Expected source 'mock', got '%s'", report.Source)
	}
	if report.RecordCount != 50 {
		t.Errorf("Expected 50 records, got %d", report.RecordCount)
	}
	if len(report.SummaryStatistics) == 0 {
		t.Error("Expected summary statistics")
	}
	if _, ok := report.SummaryStatistics["value"]; !ok {
		t.Error("Expected statistics for 'value' column")
	}
	if len(report.CategoricalDistributions["category"]) == 0 {
		t.Error("Expected category distribution")
	}
	if report.Correlations == nil {
		t.Error("Expected correlation matrix")
	}
	if report.DataQuality == nil || report.DataQuality.TotalRows != 50 {
		t.Error("Expected data quality section with 50 rows")
	}
	if len(report.TopRecords) != 5 {
		t.Errorf("Expected 5 top records, got %d", len(report.TopRecords))
	}

	path, err := rb.WriteJSON(report, "analytics_report.json")
	if err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report file: %v", err)
	}

	var decoded AnalyticsReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Report file is not valid JSON: %v", err)
	}
	if decoded.RecordCount != 50 {
		t.Errorf("Expected decoded record count 50, got %d", decoded.RecordCount)
	}
}

func TestBuildMarkdownSummary(t *testing.T) {
	markdown := BuildMarkdownSummary(testEngine(), "mock", 5)

	for _, want := range []string{
		"# Omni-Grid Analytics Summary",
		"## Summary Statistics",
		"## Category Breakdown",
		"## Top 5 Records by Value",
		"## Data Quality",
		"**Records analyzed:** 50",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("Expected summary to contain %q", want)
		}
	}
}

func TestConvertMarkdownToHTML(t *testing.T) {
	h := NewHTMLBuilder()

	html, err := h.ConvertMarkdownToHTML("# Title\n\nSome **bold** text")
	if err != nil {
		t.Fatalf("ConvertMarkdownToHTML failed: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("Unexpected HTML output: %s", html)
	}
}

func TestWriteHTML(t *testing.T) {
	outputDir := t.TempDir()
	rb := NewReportBuilder(outputDir, logger.Global())

	markdown := BuildMarkdownSummary(testEngine(), "mock", 5)
	charts := []ChartRef{{Title: "Value Distribution", Src: "value_histogram.png"}}

	path, err := rb.WriteHTML(markdown, charts, "interactive_dashboard.html", "report.html")
	if err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	if filepath.Base(path) != "report.html" {
		t.Errorf("Expected report.html, got %s", filepath.Base(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read HTML report: %v", err)
	}

	html := string(content)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Omni-Grid Analytics Summary",
		`src="value_histogram.png"`,
		`href="interactive_dashboard.html"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected HTML report to contain %q", want)
		}
	}
}
