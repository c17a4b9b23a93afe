package mockdata

import (
	"math"
	"math/rand"
	"time"

	"omnigrid/internal/models"
)

var (
	categories = []string{"A", "B", "C", "D", "E"}
	regions    = []string{"North", "South", "East", "West", "Central"}
	statuses   = []string{"Active", "Inactive", "Pending", "Completed"}
	priorities = []string{"High", "Medium", "Low"}
)

// Generator produces pseudo-random grid records, metrics, and time series.
// The draw sequence per row is fixed, so one seed and base time always
// produce identical output.
type Generator struct {
	rng  *rand.Rand
	base time.Time
}

// NewGenerator creates a generator seeded for reproducibility, anchored at
// the current time.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorAt(seed, time.Now().UTC())
}

// NewGeneratorAt creates a generator with an explicit base time. Record
// timestamps fall within the year before base.
func NewGeneratorAt(seed int64, base time.Time) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		base: base,
	}
}

// GridRecords generates numRows mock grid records
func (g *Generator) GridRecords(numRows int) []models.Record {
	start := g.base.AddDate(0, 0, -365)

	records := make([]models.Record, 0, numRows)
	for i := 0; i < numRows; i++ {
		records = append(records, models.Record{
			"id":         i + 1,
			"category":   g.choice(categories),
			"region":     g.choice(regions),
			"status":     g.choice(statuses),
			"value":      g.uniform(10, 1000, 2),
			"quantity":   g.rng.Intn(100) + 1,
			"score":      g.uniform(0, 100, 2),
			"timestamp":  start.AddDate(0, 0, g.rng.Intn(366)).Format(time.RFC3339),
			"priority":   g.choice(priorities),
			"efficiency": g.uniform(0.5, 1.0, 3),
			"cost":       g.uniform(100, 5000, 2),
			"revenue":    g.uniform(150, 6000, 2),
		})
	}
	return records
}

// Metrics generates a mock service metrics document
func (g *Generator) Metrics() *models.Metrics {
	return &models.Metrics{
		TotalRecords:    g.rng.Intn(9001) + 1000,
		ActiveUsers:     g.rng.Intn(451) + 50,
		AvgResponseTime: g.uniform(0.1, 2.0, 3),
		SuccessRate:     g.uniform(0.85, 0.99, 4),
		Uptime:          g.uniform(0.95, 0.999, 5),
		LastUpdated:     g.base.Format(time.RFC3339),
	}
}

// TimeSeries generates numPoints daily points with a linear trend plus
// gaussian noise, and a noise-free moving-average track. Values are
// clamped at zero.
func (g *Generator) TimeSeries(numPoints int) []models.TimeSeriesPoint {
	start := g.base.AddDate(0, 0, -numPoints)
	const baseValue = 100.0

	points := make([]models.TimeSeriesPoint, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		trend := float64(i) * 0.5
		noise := g.rng.NormFloat64() * 10
		value := baseValue + trend + noise

		points = append(points, models.TimeSeriesPoint{
			Date:      start.AddDate(0, 0, i).Format("2006-01-02"),
			Value:     round(math.Max(0, value), 2),
			MovingAvg: round(math.Max(0, baseValue+trend), 2),
		})
	}
	return points
}

func (g *Generator) choice(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func (g *Generator) uniform(lo, hi float64, decimals int) float64 {
	return round(lo+g.rng.Float64()*(hi-lo), decimals)
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}
