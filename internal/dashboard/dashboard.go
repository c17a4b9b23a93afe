// Package dashboard renders the multi-panel interactive HTML dashboard:
// value histogram, per-category totals, per-category score box plots, and
// the region breakdown, on one self-contained page.
package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"omnigrid/internal/analytics"
)

const (
	panelWidth  = "560px"
	panelHeight = "380px"
)

// Builder renders dashboards into an output directory
type Builder struct {
	outputDir string
}

// NewBuilder creates a dashboard builder writing into outputDir
func NewBuilder(outputDir string) *Builder {
	return &Builder{outputDir: outputDir}
}

// Build renders the dashboard page for a record set and returns the path
// of the written HTML file.
func (b *Builder) Build(eng *analytics.Engine, bins int, filename string) (string, error) {
	page := components.NewPage()
	page.PageTitle = "Omni-Grid Data Dashboard"
	page.SetLayout(components.PageFlexLayout)

	panels := 0
	if hist := b.histogramPanel(eng, bins); hist != nil {
		page.AddCharts(hist)
		panels++
	}
	if bar := b.categoryPanel(eng); bar != nil {
		page.AddCharts(bar)
		panels++
	}
	if box := b.scorePanel(eng); box != nil {
		page.AddCharts(box)
		panels++
	}
	if pie := b.regionPanel(eng); pie != nil {
		page.AddCharts(pie)
		panels++
	}
	if panels == 0 {
		return "", fmt.Errorf("no dashboard panels could be built")
	}

	path := filepath.Join(b.outputDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create dashboard file %s: %w", path, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("failed to render dashboard: %w", err)
	}
	return path, nil
}

// histogramPanel builds the value distribution histogram
func (b *Builder) histogramPanel(eng *analytics.Engine, bins int) *charts.Bar {
	hist := eng.HistogramBins("value", bins)
	if len(hist) == 0 {
		return nil
	}

	labels := make([]string, 0, len(hist))
	data := make([]opts.BarData, 0, len(hist))
	for _, bin := range hist {
		labels = append(labels, bin.Label)
		data = append(data, opts.BarData{Value: bin.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  panelWidth,
			Height: panelHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: "Value Distribution"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	bar.SetXAxis(labels).AddSeries("Value", data)
	return bar
}

// categoryPanel builds total value per category
func (b *Builder) categoryPanel(eng *analytics.Engine) *charts.Bar {
	totals := eng.AggregateByCategory("category", "value", "sum")
	if len(totals) == 0 {
		return nil
	}

	labels := sortedKeys(totals)
	data := make([]opts.BarData, 0, len(labels))
	for _, label := range labels {
		data = append(data, opts.BarData{Value: totals[label]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  panelWidth,
			Height: panelHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: "Category vs Value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	bar.SetXAxis(labels).AddSeries("Total Value", data)
	return bar
}

// scorePanel builds score box plots per category
func (b *Builder) scorePanel(eng *analytics.Engine) *charts.BoxPlot {
	groups := make(map[string][]float64)
	for _, r := range eng.Records() {
		key, ok := r.String("category")
		if !ok {
			continue
		}
		if v, ok := r.Float("score"); ok {
			groups[key] = append(groups[key], v)
		}
	}
	if len(groups) == 0 {
		return nil
	}

	labels := make([]string, 0, len(groups))
	for key := range groups {
		labels = append(labels, key)
	}
	sort.Strings(labels)

	data := make([]opts.BoxPlotData, 0, len(labels))
	for _, label := range labels {
		summary, ok := analytics.FiveNumber(groups[label])
		if !ok {
			continue
		}
		data = append(data, opts.BoxPlotData{Value: summary[:]})
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  panelWidth,
			Height: panelHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: "Score Distribution by Category"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	box.SetXAxis(labels).AddSeries("Score", data)
	return box
}

// regionPanel builds the region count pie
func (b *Builder) regionPanel(eng *analytics.Engine) *charts.Pie {
	dist := eng.CategoricalDistribution("region")
	if len(dist) == 0 {
		return nil
	}

	labels := make([]string, 0, len(dist))
	for key := range dist {
		labels = append(labels, key)
	}
	sort.Strings(labels)

	data := make([]opts.PieData, 0, len(labels))
	for _, label := range labels {
		data = append(data, opts.PieData{Name: label, Value: dist[label]})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  panelWidth,
			Height: panelHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: "Region Analysis"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)
	pie.AddSeries("Regions", data)
	return pie
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
