package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"omnigrid/internal/models"

	"gonum.org/v1/gonum/stat"
)

// DefaultPercentiles are the percentile points computed when the caller
// does not name any.
var DefaultPercentiles = []float64{25, 50, 75, 90, 95, 99}

// Engine computes descriptive statistics and aggregations over an
// in-memory record set. Operations are stateless transforms: a missing
// column, an empty set, or a non-numeric column yields an empty result,
// never an error.
type Engine struct {
	records []models.Record
	columns []string
	numeric []string
}

// NewEngine creates an analytics engine over the given records
func NewEngine(records []models.Record) *Engine {
	return &Engine{
		records: records,
		columns: models.Columns(records),
		numeric: models.NumericColumns(records),
	}
}

// Records returns the underlying record set
func (e *Engine) Records() []models.Record {
	return e.records
}

// Columns returns all column names, sorted
func (e *Engine) Columns() []string {
	return e.columns
}

// NumericColumns returns the numeric column names, sorted
func (e *Engine) NumericColumns() []string {
	return e.numeric
}

// HasColumn reports whether any record carries the column
func (e *Engine) HasColumn(column string) bool {
	for _, c := range e.columns {
		if c == column {
			return true
		}
	}
	return false
}

// ColumnStats holds summary statistics for one numeric column
type ColumnStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// SummaryStatistics computes per-column summary statistics for every
// numeric column.
func (e *Engine) SummaryStatistics() map[string]ColumnStats {
	summary := make(map[string]ColumnStats)
	for _, col := range e.numeric {
		vals := models.ColumnValues(e.records, col)
		if len(vals) == 0 {
			continue
		}

		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)

		stats := ColumnStats{
			Mean:   stat.Mean(vals, nil),
			Median: quantileLinear(0.5, sorted),
			Min:    sorted[0],
			Max:    sorted[len(sorted)-1],
			Count:  len(vals),
		}
		if len(vals) > 1 {
			stats.Std = stat.StdDev(vals, nil)
		}
		summary[col] = stats
	}
	return summary
}

// CategoricalDistribution counts occurrences of each value in a column.
// Rows where the column is missing or nil are skipped.
func (e *Engine) CategoricalDistribution(column string) map[string]int {
	dist := make(map[string]int)
	for _, r := range e.records {
		if s, ok := r.String(column); ok {
			dist[s]++
		}
	}
	return dist
}

// CorrelationMatrix holds pairwise Pearson correlations between numeric
// columns, in column order.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// At returns the correlation between two named columns
func (m *CorrelationMatrix) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return m.Values[ia][ib], true
}

// Correlations computes the pairwise Pearson correlation matrix over
// numeric columns, using rows where both columns carry numeric values.
// Returns nil when there are no numeric columns.
func (e *Engine) Correlations() *CorrelationMatrix {
	if len(e.numeric) == 0 {
		return nil
	}

	m := &CorrelationMatrix{
		Columns: append([]string(nil), e.numeric...),
		Values:  make([][]float64, len(e.numeric)),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, len(e.numeric))
		m.Values[i][i] = 1
	}

	for i := 0; i < len(e.numeric); i++ {
		for j := i + 1; j < len(e.numeric); j++ {
			r := e.pairCorrelation(e.numeric[i], e.numeric[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func (e *Engine) pairCorrelation(colA, colB string) float64 {
	var xs, ys []float64
	for _, r := range e.records {
		a, okA := r.Float(colA)
		b, okB := r.Float(colB)
		if okA && okB {
			xs = append(xs, a)
			ys = append(ys, b)
		}
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		// zero variance in one column
		return 0
	}
	return r
}

// AggregateByCategory groups rows by a category column and reduces a value
// column with the named function (sum, mean, count, min, max). Missing
// columns or an unknown function yield an empty map.
func (e *Engine) AggregateByCategory(categoryCol, valueCol, aggFunc string) map[string]float64 {
	if !e.HasColumn(categoryCol) || !e.HasColumn(valueCol) {
		return map[string]float64{}
	}

	groups := make(map[string][]float64)
	for _, r := range e.records {
		key, ok := r.String(categoryCol)
		if !ok {
			continue
		}
		if v, ok := r.Float(valueCol); ok {
			groups[key] = append(groups[key], v)
		}
	}

	result := make(map[string]float64, len(groups))
	for key, vals := range groups {
		agg, ok := reduce(vals, aggFunc)
		if !ok {
			return map[string]float64{}
		}
		result[key] = agg
	}
	return result
}

func reduce(vals []float64, aggFunc string) (float64, bool) {
	if len(vals) == 0 {
		return 0, true
	}
	switch aggFunc {
	case "sum":
		total := 0.0
		for _, v := range vals {
			total += v
		}
		return total, true
	case "mean":
		return stat.Mean(vals, nil), true
	case "count":
		return float64(len(vals)), true
	case "min":
		lo := vals[0]
		for _, v := range vals[1:] {
			lo = math.Min(lo, v)
		}
		return lo, true
	case "max":
		hi := vals[0]
		for _, v := range vals[1:] {
			hi = math.Max(hi, v)
		}
		return hi, true
	default:
		return 0, false
	}
}

// TopN returns the n records with the largest (or smallest, when ascending)
// values in a column. The sort is stable and n is clamped to the available
// rows; an absent column yields an empty slice. Rows without a numeric
// value in the column sort after all numeric rows.
func (e *Engine) TopN(column string, n int, ascending bool) []models.Record {
	if !e.HasColumn(column) || n <= 0 {
		return []models.Record{}
	}

	sorted := append([]models.Record(nil), e.records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, okA := sorted[i].Float(column)
		b, okB := sorted[j].Float(column)
		if !okA || !okB {
			return okA // numeric rows first
		}
		if ascending {
			return a < b
		}
		return a > b
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Filter returns the records matching every condition. A condition value
// that is a list matches by membership, any other value by equality;
// conditions naming absent columns are skipped. Filtering is idempotent.
func (e *Engine) Filter(conditions map[string]any) []models.Record {
	filtered := append([]models.Record(nil), e.records...)

	// deterministic application order
	cols := make([]string, 0, len(conditions))
	for col := range conditions {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	for _, col := range cols {
		if !e.HasColumn(col) {
			continue
		}
		want := conditions[col]
		var kept []models.Record
		for _, r := range filtered {
			if matches(r[col], want) {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}
	if filtered == nil {
		return []models.Record{}
	}
	return filtered
}

func matches(have, want any) bool {
	switch list := want.(type) {
	case []any:
		for _, w := range list {
			if equalValue(have, w) {
				return true
			}
		}
		return false
	case []string:
		for _, w := range list {
			if equalValue(have, w) {
				return true
			}
		}
		return false
	case []float64:
		for _, w := range list {
			if equalValue(have, w) {
				return true
			}
		}
		return false
	default:
		return equalValue(have, want)
	}
}

// equalValue compares scalars with numeric coercion, so 1 matches 1.0.
func equalValue(a, b any) bool {
	if fa, okA := models.ToFloat(a); okA {
		if fb, okB := models.ToFloat(b); okB {
			return fa == fb
		}
		return false
	}
	return a == b
}

// Percentiles computes linear-interpolated percentile values (0-100 scale)
// for a column. Nil percentiles means DefaultPercentiles. An absent column
// yields an empty map.
func (e *Engine) Percentiles(column string, percentiles []float64) map[string]float64 {
	if !e.HasColumn(column) {
		return map[string]float64{}
	}
	if percentiles == nil {
		percentiles = DefaultPercentiles
	}

	vals := models.ColumnValues(e.records, column)
	result := make(map[string]float64, len(percentiles))
	if len(vals) == 0 {
		return result
	}
	sort.Float64s(vals)

	for _, p := range percentiles {
		key := "p" + strconv.FormatFloat(p, 'f', -1, 64)
		q := math.Min(math.Max(p/100, 0), 1)
		result[key] = quantileLinear(q, vals)
	}
	return result
}

// quantileLinear computes the q-quantile of sorted values at fractional
// index q*(n-1). Gonum's Quantile interpolates the empirical CDF instead,
// which lands between different samples.
func quantileLinear(q float64, sorted []float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// QualityReport describes completeness and shape of the record set
type QualityReport struct {
	TotalRows     int               `json:"total_rows"`
	TotalColumns  int               `json:"total_columns"`
	MissingValues map[string]int    `json:"missing_values"`
	DuplicateRows int               `json:"duplicate_rows"`
	ColumnTypes   map[string]string `json:"column_types"`
}

// Quality computes a data-quality report: row/column counts, missing values
// per column (nil or absent), duplicate rows, and column value types.
func (e *Engine) Quality() *QualityReport {
	report := &QualityReport{
		TotalRows:     len(e.records),
		TotalColumns:  len(e.columns),
		MissingValues: make(map[string]int, len(e.columns)),
		ColumnTypes:   make(map[string]string, len(e.columns)),
	}

	for _, col := range e.columns {
		missing := 0
		typeName := ""
		for _, r := range e.records {
			v, ok := r[col]
			if !ok || v == nil {
				missing++
				continue
			}
			if typeName == "" {
				typeName = fmt.Sprintf("%T", v)
			}
		}
		report.MissingValues[col] = missing
		if typeName == "" {
			typeName = "null"
		}
		report.ColumnTypes[col] = typeName
	}

	seen := make(map[string]int, len(e.records))
	for _, r := range e.records {
		// map keys marshal sorted, so equal rows share one encoding
		key, err := json.Marshal(r)
		if err != nil {
			continue
		}
		seen[string(key)]++
	}
	for _, n := range seen {
		if n > 1 {
			report.DuplicateRows += n - 1
		}
	}
	return report
}
