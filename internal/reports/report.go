// Package reports produces the JSON analytics report and the HTML
// run summary written alongside the chart files.
package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"omnigrid/internal/analytics"
	"omnigrid/internal/logger"
)

// AnalyticsReport is the JSON document summarizing one analysis run
type AnalyticsReport struct {
	GeneratedAt              string                           `json:"generated_at"`
	Source                   string                           `json:"source"`
	RecordCount              int                              `json:"record_count"`
	SummaryStatistics        map[string]analytics.ColumnStats `json:"summary_statistics"`
	Percentiles              map[string]map[string]float64    `json:"percentiles"`
	CategoricalDistributions map[string]map[string]int        `json:"categorical_distributions"`
	Correlations             *analytics.CorrelationMatrix     `json:"correlations,omitempty"`
	DataQuality              *analytics.QualityReport         `json:"data_quality"`
	TopRecords               []map[string]any                 `json:"top_records_by_value,omitempty"`
}

// ReportBuilder assembles analytics reports for a record set
type ReportBuilder struct {
	outputDir string
	log       *logger.Logger
}

// NewReportBuilder creates a report builder writing into outputDir
func NewReportBuilder(outputDir string, log *logger.Logger) *ReportBuilder {
	return &ReportBuilder{
		outputDir: outputDir,
		log:       log.WithComponent("reports"),
	}
}

// Build assembles the full report document from an analytics engine
func (rb *ReportBuilder) Build(eng *analytics.Engine, source string, topN int) *AnalyticsReport {
	report := &AnalyticsReport{
		GeneratedAt:              time.Now().UTC().Format(time.RFC3339),
		Source:                   source,
		RecordCount:              len(eng.Records()),
		SummaryStatistics:        eng.SummaryStatistics(),
		Percentiles:              make(map[string]map[string]float64),
		CategoricalDistributions: make(map[string]map[string]int),
		Correlations:             eng.Correlations(),
		DataQuality:              eng.Quality(),
	}

	for _, col := range eng.NumericColumns() {
		report.Percentiles[col] = eng.Percentiles(col, nil)
	}

	for _, col := range []string{"category", "region", "status", "priority"} {
		if dist := eng.CategoricalDistribution(col); len(dist) > 0 {
			report.CategoricalDistributions[col] = dist
		}
	}

	if eng.HasColumn("value") {
		for _, r := range eng.TopN("value", topN, false) {
			report.TopRecords = append(report.TopRecords, map[string]any(r))
		}
	}

	return report
}

// WriteJSON writes the report as indented JSON and returns the file path
func (rb *ReportBuilder) WriteJSON(report *AnalyticsReport, filename string) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analytics report: %w", err)
	}

	path := filepath.Join(rb.outputDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write analytics report %s: %w", path, err)
	}

	rb.log.Debugf("Wrote analytics report (%d bytes)", len(data))
	return path, nil
}
