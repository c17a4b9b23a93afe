package analytics

import "sort"

// FiveNumber returns the min, q1, median, q3, max summary of vals, in that
// order. ok is false when vals is empty.
func FiveNumber(vals []float64) (summary [5]float64, ok bool) {
	if len(vals) == 0 {
		return summary, false
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	summary[0] = sorted[0]
	summary[1] = quantileLinear(0.25, sorted)
	summary[2] = quantileLinear(0.5, sorted)
	summary[3] = quantileLinear(0.75, sorted)
	summary[4] = sorted[len(sorted)-1]
	return summary, true
}
