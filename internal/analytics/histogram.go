package analytics

import (
	"fmt"

	"omnigrid/internal/models"
)

// Bin is one equal-width histogram bucket
type Bin struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// HistogramBins buckets the numeric values of a column into equal-width
// bins. An absent or non-numeric column, or bins <= 0, yields nil.
func (e *Engine) HistogramBins(column string, bins int) []Bin {
	if bins <= 0 {
		return nil
	}
	vals := models.ColumnValues(e.records, column)
	if len(vals) == 0 {
		return nil
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []Bin{{
			Label: fmt.Sprintf("%.1f", lo),
			Min:   lo,
			Max:   hi,
			Count: len(vals),
		}}
	}

	width := (hi - lo) / float64(bins)
	result := make([]Bin, bins)
	for i := range result {
		bMin := lo + float64(i)*width
		result[i] = Bin{
			Label: fmt.Sprintf("%.1f-%.1f", bMin, bMin+width),
			Min:   bMin,
			Max:   bMin + width,
		}
	}
	for _, v := range vals {
		idx := int((v - lo) / width)
		if idx >= bins {
			// max value lands in the last bin
			idx = bins - 1
		}
		result[idx].Count++
	}
	return result
}
