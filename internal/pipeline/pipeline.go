// Package pipeline drives one end-to-end analysis run: load records,
// compute analytics, render charts and reports, and persist the artifacts.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"omnigrid/internal/analytics"
	"omnigrid/internal/charts"
	"omnigrid/internal/config"
	"omnigrid/internal/dashboard"
	"omnigrid/internal/fetchers"
	"omnigrid/internal/logger"
	"omnigrid/internal/mockdata"
	"omnigrid/internal/models"
	"omnigrid/internal/reports"
	"omnigrid/internal/storage"
)

const (
	reportHTMLFile = "report.html"
	reportJSONFile = "analytics_report.json"
	dashboardFile  = "interactive_dashboard.html"
	recordsFile    = "grid_records.json"
	metricsFile    = "metrics.json"
	seriesLength   = 30
)

// Pipeline runs the fetch, analyze, visualize, persist sequence
type Pipeline struct {
	cfg     *config.Config
	fetcher *fetchers.DataFetcher
	store   storage.StorageClient
	log     *logger.Logger
}

// New creates a pipeline using the given storage client
func New(cfg *config.Config, store storage.StorageClient) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		fetcher: fetchers.NewDataFetcher(cfg.APIBaseURL, cfg.RequestTimeout, cfg.HealthTimeout),
		store:   store,
		log:     logger.Global().WithComponent("pipeline"),
	}
}

// Run performs one full analysis run and returns its summary. Steps run
// sequentially; only a failure to load any data or to write the report
// aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*models.RunResult, error) {
	started := time.Now().UTC()
	p.log.Info("Starting analysis run")

	records, metrics, source := p.loadData(ctx)
	if len(records) == 0 {
		return nil, fmt.Errorf("no records available from %s source", source)
	}
	p.log.Infof("Loaded %d records from %s source", len(records), source)

	eng := analytics.NewEngine(records)

	workDir, err := os.MkdirTemp("", "omnigrid-run-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	series := mockdata.NewGenerator(p.cfg.MockSeed).TimeSeries(seriesLength)

	var artifacts []string

	chartGen := charts.NewChartGenerator(workDir)
	chartPaths := chartGen.GenerateAll(eng, series, p.cfg.HistogramBins)
	artifacts = append(artifacts, chartPaths...)

	if path, err := dashboard.NewBuilder(workDir).Build(eng, p.cfg.HistogramBins, dashboardFile); err != nil {
		p.log.Warnf("Skipping dashboard: %v", err)
	} else {
		artifacts = append(artifacts, path)
	}

	reportBuilder := reports.NewReportBuilder(workDir, logger.Global())
	report := reportBuilder.Build(eng, source, p.cfg.TopNSize)
	jsonPath, err := reportBuilder.WriteJSON(report, reportJSONFile)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, jsonPath)

	markdown := reports.BuildMarkdownSummary(eng, source, p.cfg.TopNSize)
	htmlPath, err := reportBuilder.WriteHTML(markdown, chartRefs(chartPaths), dashboardFile, reportHTMLFile)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, htmlPath)

	if path, err := p.writeRawData(workDir, records, metrics); err != nil {
		p.log.Warnf("Skipping raw data files: %v", err)
	} else {
		artifacts = append(artifacts, path...)
	}

	stored, err := p.storeArtifacts(ctx, artifacts, started)
	if err != nil {
		return nil, err
	}

	result := &models.RunResult{
		Timestamp:    started,
		RecordCount:  len(records),
		Source:       source,
		Artifacts:    stored,
		ReportFolder: storage.GenerateRunFolderPath(started),
		DurationMS:   time.Since(started).Milliseconds(),
	}
	p.log.Infof("Analysis run complete: %d artifacts in %s (%dms)",
		len(result.Artifacts), result.ReportFolder, result.DurationMS)
	return result, nil
}

// loadData returns records and metrics from the API when it is healthy,
// falling back to the seeded generator otherwise
func (p *Pipeline) loadData(ctx context.Context) ([]models.Record, *models.Metrics, string) {
	if !p.cfg.UseMockData {
		if p.fetcher.HealthCheck(ctx) {
			records, err := p.fetcher.FetchGridRecords(ctx, p.cfg.GridEndpoint)
			if err == nil && len(records) > 0 {
				metrics, merr := p.fetcher.FetchMetrics(ctx, p.cfg.MetricsEndpoint)
				if merr != nil {
					p.log.Warnf("Metrics endpoint unavailable: %v", merr)
				}
				return records, metrics, "api"
			}
			p.log.Warn("Grid endpoint returned no usable records, using mock data")
		} else {
			p.log.Warn("API health check failed, using mock data")
		}
	}

	gen := mockdata.NewGenerator(p.cfg.MockSeed)
	return gen.GridRecords(p.cfg.MockRecords), gen.Metrics(), "mock"
}

// writeRawData persists the input records and metrics next to the report
func (p *Pipeline) writeRawData(workDir string, records []models.Record, metrics *models.Metrics) ([]string, error) {
	var paths []string

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}
	recordsPath := filepath.Join(workDir, recordsFile)
	if err := os.WriteFile(recordsPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write records file: %w", err)
	}
	paths = append(paths, recordsPath)

	if metrics != nil {
		data, err := json.MarshalIndent(metrics, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metrics: %w", err)
		}
		metricsPath := filepath.Join(workDir, metricsFile)
		if err := os.WriteFile(metricsPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write metrics file: %w", err)
		}
		paths = append(paths, metricsPath)
	}

	return paths, nil
}

// storeArtifacts copies every generated file into the run folder
func (p *Pipeline) storeArtifacts(ctx context.Context, paths []string, timestamp time.Time) ([]string, error) {
	var stored []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
		}
		name := filepath.Base(path)
		if err := p.store.StoreFile(ctx, data, name, timestamp); err != nil {
			return nil, fmt.Errorf("failed to store artifact %s: %w", name, err)
		}
		stored = append(stored, name)
	}
	return stored, nil
}

func chartRefs(paths []string) []reports.ChartRef {
	titles := map[string]string{
		"category_distribution.png": "Total Value by Category",
		"region_distribution.png":   "Distribution by Region",
		"line_trend.png":            "Daily Value Trend",
		"value_by_status.png":       "Value Distribution by Status",
		"value_vs_score.png":        "Value vs Score by Category",
		"value_histogram.png":       "Value Distribution",
		"correlation_heatmap.png":   "Correlation Matrix",
	}

	refs := make([]reports.ChartRef, 0, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		title := titles[name]
		if title == "" {
			title = name
		}
		refs = append(refs, reports.ChartRef{Title: title, Src: name})
	}
	return refs
}
