package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"omnigrid/internal/analytics"
	"omnigrid/internal/models"
)

// seriesPalette is cycled through for per-category series
var seriesPalette = []drawing.Color{
	{R: 70, G: 130, B: 180, A: 255},  // steel blue
	{R: 255, G: 127, B: 80, A: 255},  // coral
	{R: 60, G: 179, B: 113, A: 255},  // medium sea green
	{R: 186, G: 85, B: 211, A: 255},  // orchid
	{R: 218, G: 165, B: 32, A: 255},  // goldenrod
	{R: 205, G: 92, B: 92, A: 255},   // indian red
	{R: 100, G: 149, B: 237, A: 255}, // cornflower
	{R: 128, G: 128, B: 128, A: 255}, // gray
}

var barFill = drawing.Color{R: 70, G: 130, B: 180, A: 210}

// BarChart renders category totals as a PNG bar chart. Bars are ordered by
// label so repeated runs produce identical charts.
func (cg *ChartGenerator) BarChart(data map[string]float64, title, xLabel, yLabel, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("no data for bar chart %q", title)
	}

	labels := make([]string, 0, len(data))
	for label := range data {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	bars := make([]chart.Value, 0, len(labels))
	for _, label := range labels {
		bars = append(bars, chart.Value{
			Value: data[label],
			Label: label,
			Style: chart.Style{FillColor: barFill, StrokeColor: barFill},
		})
	}

	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Height:   400,
		Width:    720,
		BarWidth: 60,
		Bars:     bars,
		XAxis:    chart.Style{FontSize: 12},
		YAxis: chart.YAxis{
			Name:      yLabel,
			NameStyle: chart.Style{FontSize: 12},
			Style:     chart.Style{FontSize: 10},
		},
	}

	return cg.renderPNG(&graph, filename)
}

// PieChart renders categorical counts as a PNG pie chart
func (cg *ChartGenerator) PieChart(data map[string]int, title, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("no data for pie chart %q", title)
	}

	labels := make([]string, 0, len(data))
	total := 0
	for label, n := range data {
		labels = append(labels, label)
		total += n
	}
	sort.Strings(labels)

	values := make([]chart.Value, 0, len(labels))
	for i, label := range labels {
		n := data[label]
		pct := 0.0
		if total > 0 {
			pct = float64(n) / float64(total) * 100
		}
		values = append(values, chart.Value{
			Value: float64(n),
			Label: fmt.Sprintf("%s (%.1f%%)", label, pct),
			Style: chart.Style{FillColor: seriesPalette[i%len(seriesPalette)]},
		})
	}

	graph := chart.PieChart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Width:  600,
		Height: 520,
		Values: values,
	}

	return cg.renderPNG(&graph, filename)
}

// LineChart renders a daily series with its moving average as a PNG
// time-series chart.
func (cg *ChartGenerator) LineChart(series []models.TimeSeriesPoint, title, filename string) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("no data for line chart %q", title)
	}

	xs := make([]time.Time, 0, len(series))
	values := make([]float64, 0, len(series))
	averages := make([]float64, 0, len(series))
	for _, p := range series {
		t, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			continue
		}
		xs = append(xs, t)
		values = append(values, p.Value)
		averages = append(averages, p.MovingAvg)
	}
	if len(xs) == 0 {
		return "", fmt.Errorf("no parseable dates for line chart %q", title)
	}

	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 60, Right: 20, Bottom: 40},
		},
		Height: 380,
		Width:  820,
		XAxis: chart.XAxis{
			Name:      "Date",
			NameStyle: chart.Style{FontSize: 12},
			Style:     chart.Style{FontSize: 9},
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(time.Time); ok {
					return t.Format("01-02")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:      "Value",
			NameStyle: chart.Style{FontSize: 12},
			Style:     chart.Style{FontSize: 10},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Value",
				Style: chart.Style{
					StrokeColor: seriesPalette[0],
					StrokeWidth: 2,
					DotColor:    seriesPalette[0],
					DotWidth:    3,
				},
				XValues: xs,
				YValues: values,
			},
			chart.TimeSeries{
				Name: "Moving Average",
				Style: chart.Style{
					StrokeColor:     seriesPalette[1],
					StrokeWidth:     2,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: xs,
				YValues: averages,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return cg.renderPNG(&graph, filename)
}

// ScatterPlot renders two numeric columns against each other, one dot
// series per value of the color column. An empty color column draws a
// single series.
func (cg *ChartGenerator) ScatterPlot(eng *analytics.Engine, xCol, yCol, colorCol, title, filename string) (string, error) {
	type pair struct{ x, y float64 }
	groups := make(map[string][]pair)
	for _, r := range eng.Records() {
		x, okX := r.Float(xCol)
		y, okY := r.Float(yCol)
		if !okX || !okY {
			continue
		}
		key := ""
		if colorCol != "" {
			key, _ = r.String(colorCol)
		}
		groups[key] = append(groups[key], pair{x, y})
	}
	if len(groups) == 0 {
		return "", fmt.Errorf("no numeric pairs for scatter plot %q", title)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var series []chart.Series
	for i, key := range keys {
		pts := groups[key]
		xs := make([]float64, len(pts))
		ys := make([]float64, len(pts))
		for j, p := range pts {
			xs[j] = p.x
			ys[j] = p.y
		}
		name := key
		if name == "" {
			name = yCol
		}
		color := seriesPalette[i%len(seriesPalette)]
		series = append(series, chart.ContinuousSeries{
			Name: name,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    color,
				DotWidth:    5,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 60, Right: 20, Bottom: 40},
		},
		Height: 480,
		Width:  720,
		XAxis: chart.XAxis{
			Name:      xCol,
			NameStyle: chart.Style{FontSize: 12},
			Style:     chart.Style{FontSize: 10},
		},
		YAxis: chart.YAxis{
			Name:      yCol,
			NameStyle: chart.Style{FontSize: 12},
			Style:     chart.Style{FontSize: 10},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return cg.renderPNG(&graph, filename)
}

// Histogram renders pre-computed equal-width bins as a PNG bar chart
func (cg *ChartGenerator) Histogram(bins []analytics.Bin, title, xLabel, filename string) (string, error) {
	if len(bins) == 0 {
		return "", fmt.Errorf("no bins for histogram %q", title)
	}

	bars := make([]chart.Value, 0, len(bins))
	for _, b := range bins {
		bars = append(bars, chart.Value{
			Value: float64(b.Count),
			Label: b.Label,
			Style: chart.Style{FillColor: barFill, StrokeColor: barFill},
		})
	}

	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 40},
		},
		Height:   400,
		Width:    900,
		BarWidth: 18,
		Bars:     bars,
		XAxis:    chart.Style{FontSize: 7},
		YAxis: chart.YAxis{
			Name:      "Frequency",
			NameStyle: chart.Style{FontSize: 12},
			Style:     chart.Style{FontSize: 10},
		},
	}

	return cg.renderPNG(&graph, filename)
}

type pngRenderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func (cg *ChartGenerator) renderPNG(graph pngRenderable, filename string) (string, error) {
	path := filepath.Join(cg.outputDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render chart %s: %w", filename, err)
	}
	return path, nil
}
