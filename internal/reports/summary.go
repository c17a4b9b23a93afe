package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"omnigrid/internal/analytics"
)

// BuildMarkdownSummary produces the markdown run summary embedded in the
// HTML report. Sections follow a fixed order so successive runs diff
// cleanly.
func BuildMarkdownSummary(eng *analytics.Engine, source string, topN int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Omni-Grid Analytics Summary\n\n")
	fmt.Fprintf(&b, "**Generated:** %s  \n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**Data source:** %s  \n", source)
	fmt.Fprintf(&b, "**Records analyzed:** %d\n\n", len(eng.Records()))

	writeStatsSection(&b, eng)
	writeDistributionSection(&b, eng)
	writeTopRecordsSection(&b, eng, topN)
	writeQualitySection(&b, eng)

	return b.String()
}

func writeStatsSection(b *strings.Builder, eng *analytics.Engine) {
	stats := eng.SummaryStatistics()
	if len(stats) == 0 {
		return
	}

	b.WriteString("## Summary Statistics\n\n")
	b.WriteString("| Column | Mean | Median | Std | Min | Max |\n")
	b.WriteString("|--------|------|--------|-----|-----|-----|\n")

	cols := make([]string, 0, len(stats))
	for col := range stats {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	for _, col := range cols {
		s := stats[col]
		fmt.Fprintf(b, "| %s | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
			col, s.Mean, s.Median, s.Std, s.Min, s.Max)
	}
	b.WriteString("\n")
}

func writeDistributionSection(b *strings.Builder, eng *analytics.Engine) {
	dist := eng.CategoricalDistribution("category")
	if len(dist) == 0 {
		return
	}

	b.WriteString("## Category Breakdown\n\n")

	keys := make([]string, 0, len(dist))
	total := 0
	for key, n := range dist {
		keys = append(keys, key)
		total += n
	}
	sort.Strings(keys)

	for _, key := range keys {
		share := 0.0
		if total > 0 {
			share = float64(dist[key]) / float64(total) * 100
		}
		fmt.Fprintf(b, "- **%s**: %d records (%.1f%%)\n", key, dist[key], share)
	}
	b.WriteString("\n")
}

func writeTopRecordsSection(b *strings.Builder, eng *analytics.Engine, topN int) {
	if !eng.HasColumn("value") {
		return
	}
	top := eng.TopN("value", topN, false)
	if len(top) == 0 {
		return
	}

	fmt.Fprintf(b, "## Top %d Records by Value\n\n", len(top))
	for i, r := range top {
		id, _ := r.String("id")
		category, _ := r.String("category")
		value, _ := r.Float("value")
		fmt.Fprintf(b, "%d. `%s` (%s): %.2f\n", i+1, id, category, value)
	}
	b.WriteString("\n")
}

func writeQualitySection(b *strings.Builder, eng *analytics.Engine) {
	q := eng.Quality()

	b.WriteString("## Data Quality\n\n")
	fmt.Fprintf(b, "- Rows: %d\n", q.TotalRows)
	fmt.Fprintf(b, "- Columns: %d\n", q.TotalColumns)
	fmt.Fprintf(b, "- Duplicate rows: %d\n", q.DuplicateRows)

	missing := 0
	for _, n := range q.MissingValues {
		missing += n
	}
	fmt.Fprintf(b, "- Missing values: %d\n", missing)
	b.WriteString("\n")
}
