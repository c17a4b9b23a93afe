package charts

import (
	"omnigrid/internal/analytics"
	"omnigrid/internal/logger"
	"omnigrid/internal/models"
)

// ChartGenerator renders chart images into an output directory
type ChartGenerator struct {
	outputDir string
	log       *logger.Logger
}

// NewChartGenerator creates a chart generator writing into outputDir
func NewChartGenerator(outputDir string) *ChartGenerator {
	return &ChartGenerator{
		outputDir: outputDir,
		log:       logger.Global().WithComponent("charts"),
	}
}

// GenerateAll renders the full chart set for a record set. Each chart is
// attempted independently; a failed chart is logged and skipped, never
// fatal. Returns the paths of the files that were written.
func (cg *ChartGenerator) GenerateAll(eng *analytics.Engine, series []models.TimeSeriesPoint, bins int) []string {
	var files []string
	add := func(name, path string, err error) {
		if err != nil {
			cg.log.Warnf("Skipping %s chart: %v", name, err)
			return
		}
		files = append(files, path)
	}

	if totals := eng.AggregateByCategory("category", "value", "sum"); len(totals) > 0 {
		path, err := cg.BarChart(totals, "Total Value by Category", "Category", "Total Value", "category_distribution.png")
		add("bar", path, err)
	}

	if dist := eng.CategoricalDistribution("region"); len(dist) > 0 {
		path, err := cg.PieChart(dist, "Distribution by Region", "region_distribution.png")
		add("pie", path, err)
	}

	if len(series) > 0 {
		path, err := cg.LineChart(series, "Daily Value Trend", "line_trend.png")
		add("line", path, err)
	}

	if eng.HasColumn("status") && eng.HasColumn("value") {
		path, err := cg.BoxPlot(eng, "status", "value", "Value Distribution by Status", "value_by_status.png")
		add("box", path, err)
	}

	if eng.HasColumn("value") && eng.HasColumn("score") {
		path, err := cg.ScatterPlot(eng, "value", "score", "category", "Value vs Score by Category", "value_vs_score.png")
		add("scatter", path, err)
	}

	if hist := eng.HistogramBins("value", bins); len(hist) > 0 {
		path, err := cg.Histogram(hist, "Value Distribution", "Value", "value_histogram.png")
		add("histogram", path, err)
	}

	if corr := eng.Correlations(); corr != nil {
		path, err := cg.CorrelationHeatmap(corr, "Correlation Matrix", "correlation_heatmap.png")
		add("heatmap", path, err)
	}

	return files
}
