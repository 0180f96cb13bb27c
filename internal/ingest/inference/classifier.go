// Package inference classifies CSV columns: it detects primitive types,
// assigns semantic roles (identifier, timestamp, metric), and scores how
// relevant each column is for analysis. All heuristics are pure functions of
// their inputs and the loaded profile.
package inference

import "github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"

// Classifier applies the profile heuristics to column names and samples.
type Classifier struct {
	profile Profile
}

// New builds a Classifier from a profile.
func New(profile Profile) *Classifier {
	return &Classifier{profile: profile}
}

// SampleSize returns how many leading row values feed classification.
func (c *Classifier) SampleSize() int {
	return c.profile.SampleSize
}

// Describe runs the full classification for one column.
func (c *Classifier) Describe(name string, sample []string) entity.ColumnDescriptor {
	colType := c.DetectType(sample)

	return entity.ColumnDescriptor{
		Name:         name,
		Type:         colType,
		IsIdentifier: c.IsIdentifier(name, sample),
		IsTimestamp:  c.IsTimestamp(name, colType),
		IsMetric:     c.IsMetric(name, colType),
		Relevance:    c.Score(name, colType, sample),
		Samples:      sample,
	}
}
