package inference

import (
	"math"
	"strings"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
)

// Score assigns a relevance score to a column for dashboard pre-selection.
//
// The detected type sets the base, a name matching the importance keywords
// adds a bonus, and the result is discounted by the fraction of empty sample
// values. Scores always land in [0,100]; an empty sample keeps a neutral
// completeness factor so pathological inputs stay in range. Same inputs,
// same score.
func (c *Classifier) Score(name string, colType entity.ColumnType, sample []string) float64 {
	var score float64
	switch colType {
	case entity.ColumnDate:
		score = c.profile.DateScore
	case entity.ColumnNumber:
		score = c.profile.NumberScore
	case entity.ColumnString:
		score = c.profile.StringScore
	case entity.ColumnBoolean:
		score = c.profile.BooleanScore
	}

	if containsAny(name, c.profile.ImportanceKeywords) {
		score += c.profile.ImportanceBonus
	}

	if len(sample) > 0 {
		empties := 0
		for _, v := range sample {
			if strings.TrimSpace(v) == "" {
				empties++
			}
		}
		score *= 1 - float64(empties)/float64(len(sample))
	}

	return math.Min(100, math.Max(0, score))
}
