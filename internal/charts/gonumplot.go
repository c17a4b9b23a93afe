package charts

import (
	"fmt"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"omnigrid/internal/analytics"
)

// BoxPlot renders the distribution of a numeric column grouped by a
// category column, one box per category value.
func (cg *ChartGenerator) BoxPlot(eng *analytics.Engine, categoryCol, valueCol, title, filename string) (string, error) {
	groups := make(map[string]plotter.Values)
	for _, r := range eng.Records() {
		key, ok := r.String(categoryCol)
		if !ok {
			continue
		}
		if v, ok := r.Float(valueCol); ok {
			groups[key] = append(groups[key], v)
		}
	}
	if len(groups) == 0 {
		return "", fmt.Errorf("no grouped values for box plot %q", title)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = valueCol
	p.X.Label.Text = categoryCol

	width := vg.Points(36)
	for i, key := range keys {
		box, err := plotter.NewBoxPlot(width, float64(i), groups[key])
		if err != nil {
			return "", fmt.Errorf("failed to build box for %q: %w", key, err)
		}
		p.Add(box)
	}
	p.NominalX(keys...)

	path := filepath.Join(cg.outputDir, filename)
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save box plot %s: %w", filename, err)
	}
	return path, nil
}

// corrGrid adapts a correlation matrix to the plotter heatmap grid
type corrGrid struct {
	m *analytics.CorrelationMatrix
}

func (g corrGrid) Dims() (c, r int) {
	n := len(g.m.Columns)
	return n, n
}

func (g corrGrid) Z(c, r int) float64 { return g.m.Values[r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// CorrelationHeatmap renders a correlation matrix as a heatmap with a
// diverging palette centered at zero.
func (cg *ChartGenerator) CorrelationHeatmap(m *analytics.CorrelationMatrix, title, filename string) (string, error) {
	if m == nil || len(m.Columns) == 0 {
		return "", fmt.Errorf("empty correlation matrix for heatmap %q", title)
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	p := plot.New()
	p.Title.Text = title
	p.Add(plotter.NewHeatMap(corrGrid{m}, colors.Palette(255)))
	p.NominalX(m.Columns...)
	p.NominalY(m.Columns...)
	p.X.Tick.Label.Rotation = 0.9
	p.X.Tick.Label.XAlign = -1

	path := filepath.Join(cg.outputDir, filename)
	if err := p.Save(7*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save heatmap %s: %w", filename, err)
	}
	return path, nil
}
