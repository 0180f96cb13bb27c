package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
)

// Range bounds a KPI computation to an inclusive time window. Zero bounds
// are open ended.
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// IsOpen reports whether the range has no bounds at all.
func (r Range) IsOpen() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// filterRecords returns the records inside the range. Records without a
// resolved timestamp only survive an open range, since they cannot be placed
// on the timeline.
func filterRecords(records []entity.Record, rng Range) []entity.Record {
	if rng.IsOpen() {
		return records
	}

	out := make([]entity.Record, 0, len(records))
	for _, rec := range records {
		if rec.Timestamp.IsZero() {
			continue
		}
		if rng.Contains(rec.Timestamp) {
			out = append(out, rec)
		}
	}
	return out
}

// TimestampColumn returns the name of the most relevant timestamp-flagged
// column, or "" when the upload has none.
func TimestampColumn(columns []entity.ColumnDescriptor) string {
	best, bestScore := "", -1.0
	for _, col := range columns {
		if col.IsTimestamp && col.Relevance > bestScore {
			best, bestScore = col.Name, col.Relevance
		}
	}
	return best
}

// pickColumn returns the name of the most relevant column whose name
// contains one of the keywords, or "" when nothing matches.
func pickColumn(columns []entity.ColumnDescriptor, keywords ...string) string {
	best, bestScore := "", -1.0
	for _, col := range columns {
		lower := strings.ToLower(col.Name)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) && col.Relevance > bestScore {
				best, bestScore = col.Name, col.Relevance
				break
			}
		}
	}
	return best
}

// pickMetricColumn returns the most relevant metric-flagged column, or "".
func pickMetricColumn(columns []entity.ColumnDescriptor) string {
	best, bestScore := "", -1.0
	for _, col := range columns {
		if col.IsMetric && col.Relevance > bestScore {
			best, bestScore = col.Name, col.Relevance
		}
	}
	return best
}

// pickIdentifierColumn returns the most relevant identifier-flagged column,
// or "".
func pickIdentifierColumn(columns []entity.ColumnDescriptor) string {
	best, bestScore := "", -1.0
	for _, col := range columns {
		if col.IsIdentifier && col.Relevance > bestScore {
			best, bestScore = col.Name, col.Relevance
		}
	}
	return best
}

// countBy tallies the non-empty values of one column. The result is never
// nil so responses render as an object, not null.
func countBy(records []entity.Record, column string) map[string]int {
	out := map[string]int{}
	if column == "" {
		return out
	}
	for _, rec := range records {
		if v := strings.TrimSpace(rec.Fields[column]); v != "" {
			out[v]++
		}
	}
	return out
}

// distinctCount counts the distinct non-empty values of one column.
func distinctCount(records []entity.Record, column string) int {
	if column == "" {
		return 0
	}
	seen := make(map[string]struct{})
	for _, rec := range records {
		if v := strings.TrimSpace(rec.Fields[column]); v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// avgMetric averages the parseable numeric values of one column, 0 when the
// column is absent or holds no numbers.
func avgMetric(records []entity.Record, column string) float64 {
	if column == "" {
		return 0
	}

	var sum float64
	var n int
	for _, rec := range records {
		v := strings.TrimSpace(rec.Fields[column])
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		sum += f
		n++
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
