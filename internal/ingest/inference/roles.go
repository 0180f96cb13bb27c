package inference

import (
	"strings"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
)

// IsIdentifier reports whether a column likely holds identifiers, either by
// name or because nearly every sample value is distinct.
func (c *Classifier) IsIdentifier(name string, sample []string) bool {
	if containsAny(name, c.profile.IdentifierKeywords) {
		return true
	}
	if len(sample) == 0 {
		return false
	}

	distinct := make(map[string]struct{}, len(sample))
	for _, v := range sample {
		distinct[v] = struct{}{}
	}

	return float64(len(distinct))/float64(len(sample)) > c.profile.UniquenessThreshold
}

// IsTimestamp reports whether a column represents a point in time, by
// detected type or by name.
func (c *Classifier) IsTimestamp(name string, colType entity.ColumnType) bool {
	return colType == entity.ColumnDate || containsAny(name, c.profile.TimestampKeywords)
}

// IsMetric reports whether a numeric column is an aggregatable measure.
func (c *Classifier) IsMetric(name string, colType entity.ColumnType) bool {
	return colType == entity.ColumnNumber && containsAny(name, c.profile.MetricKeywords)
}

func containsAny(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
