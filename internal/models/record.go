package models

import (
	"encoding/json"
	"sort"
	"time"
)

// Record is a single uniformly-shaped row: column name to scalar value.
// Values are whatever JSON decoding or the mock generator produced
// (float64, int, string, bool, nil).
type Record map[string]any

// Float returns the value of a column coerced to float64.
// The second return is false for missing, nil, or non-numeric values.
func (r Record) Float(column string) (float64, bool) {
	v, ok := r[column]
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// String returns the value of a column rendered as a string.
func (r Record) String(column string) (string, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// ToFloat coerces a scalar to float64 when it carries a numeric value.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Columns returns the union of column names across all records, sorted.
func Columns(records []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// NumericColumns returns the sorted column names that hold a numeric value
// in at least one record.
func NumericColumns(records []Record) []string {
	numeric := make(map[string]struct{})
	for _, r := range records {
		for k, v := range r {
			if _, ok := ToFloat(v); ok {
				numeric[k] = struct{}{}
			}
		}
	}
	cols := make([]string, 0, len(numeric))
	for k := range numeric {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// ColumnValues extracts the numeric values of one column, skipping rows
// where the column is missing or not numeric.
func ColumnValues(records []Record, column string) []float64 {
	var vals []float64
	for _, r := range records {
		if f, ok := r.Float(column); ok {
			vals = append(vals, f)
		}
	}
	return vals
}

// Metrics is the service-level metrics document served by the grid API
// (or synthesized by the mock generator).
type Metrics struct {
	TotalRecords    int     `json:"total_records"`
	ActiveUsers     int     `json:"active_users"`
	AvgResponseTime float64 `json:"avg_response_time"`
	SuccessRate     float64 `json:"success_rate"`
	Uptime          float64 `json:"uptime"`
	LastUpdated     string  `json:"last_updated"`
}

// TimeSeriesPoint is one point of a generated daily series.
type TimeSeriesPoint struct {
	Date      string  `json:"date"`
	Value     float64 `json:"value"`
	MovingAvg float64 `json:"moving_avg"`
}

// RunResult summarizes one completed analysis run.
type RunResult struct {
	Timestamp    time.Time `json:"timestamp"`
	RecordCount  int       `json:"record_count"`
	Source       string    `json:"source"` // "api" or "mock"
	Artifacts    []string  `json:"artifacts"`
	ReportFolder string    `json:"report_folder"`
	DurationMS   int64     `json:"duration_ms"`
}
