package inference

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile holds the tunable constants driving column classification.
//
// The zero value is not usable; start from DefaultProfile or LoadProfile.
type Profile struct {
	SampleSize          int     `yaml:"sample_size"`
	TypeThreshold       float64 `yaml:"type_threshold"`
	UniquenessThreshold float64 `yaml:"uniqueness_threshold"`

	DateScore       float64 `yaml:"date_score"`
	NumberScore     float64 `yaml:"number_score"`
	StringScore     float64 `yaml:"string_score"`
	BooleanScore    float64 `yaml:"boolean_score"`
	ImportanceBonus float64 `yaml:"importance_bonus"`

	IdentifierKeywords []string `yaml:"identifier_keywords"`
	TimestampKeywords  []string `yaml:"timestamp_keywords"`
	MetricKeywords     []string `yaml:"metric_keywords"`
	ImportanceKeywords []string `yaml:"importance_keywords"`
}

// DefaultProfile returns the stock classification constants.
func DefaultProfile() Profile {
	return Profile{
		SampleSize:          5,
		TypeThreshold:       0.8,
		UniquenessThreshold: 0.9,
		DateScore:           30,
		NumberScore:         20,
		StringScore:         10,
		BooleanScore:        0,
		ImportanceBonus:     25,
		IdentifierKeywords:  []string{"id", "identifier", "uuid", "key", "serial", "imei"},
		TimestampKeywords:   []string{"time", "date", "timestamp", "created", "updated", "seen"},
		MetricKeywords:      []string{"count", "total", "sum", "avg", "rate", "score", "percent"},
		ImportanceKeywords: []string{
			"time", "date", "id", "status", "type", "level", "severity",
			"source", "destination", "user", "device", "platform",
		},
	}
}

// LoadProfile reads a YAML profile from path. Fields left out of the file
// fall back to the defaults.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read scoring profile: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("parse scoring profile: %w", err)
	}

	profile.applyDefaults()
	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}

	return profile, nil
}

func (p *Profile) applyDefaults() {
	def := DefaultProfile()

	if p.SampleSize == 0 {
		p.SampleSize = def.SampleSize
	}
	if p.TypeThreshold == 0 {
		p.TypeThreshold = def.TypeThreshold
	}
	if p.UniquenessThreshold == 0 {
		p.UniquenessThreshold = def.UniquenessThreshold
	}
	if p.DateScore == 0 {
		p.DateScore = def.DateScore
	}
	if p.NumberScore == 0 {
		p.NumberScore = def.NumberScore
	}
	if p.StringScore == 0 {
		p.StringScore = def.StringScore
	}
	if p.ImportanceBonus == 0 {
		p.ImportanceBonus = def.ImportanceBonus
	}
	if len(p.IdentifierKeywords) == 0 {
		p.IdentifierKeywords = def.IdentifierKeywords
	}
	if len(p.TimestampKeywords) == 0 {
		p.TimestampKeywords = def.TimestampKeywords
	}
	if len(p.MetricKeywords) == 0 {
		p.MetricKeywords = def.MetricKeywords
	}
	if len(p.ImportanceKeywords) == 0 {
		p.ImportanceKeywords = def.ImportanceKeywords
	}

	// Keyword matching is case-insensitive against lowered column names.
	lower := func(values []string) []string {
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = strings.ToLower(strings.TrimSpace(v))
		}
		return out
	}
	p.IdentifierKeywords = lower(p.IdentifierKeywords)
	p.TimestampKeywords = lower(p.TimestampKeywords)
	p.MetricKeywords = lower(p.MetricKeywords)
	p.ImportanceKeywords = lower(p.ImportanceKeywords)
}

// Validate reports whether the profile values are usable.
func (p Profile) Validate() error {
	if p.SampleSize < 1 {
		return fmt.Errorf("sample_size must be at least 1, got %d", p.SampleSize)
	}
	if p.TypeThreshold <= 0 || p.TypeThreshold > 1 {
		return fmt.Errorf("type_threshold must be in (0,1], got %v", p.TypeThreshold)
	}
	if p.UniquenessThreshold <= 0 || p.UniquenessThreshold > 1 {
		return fmt.Errorf("uniqueness_threshold must be in (0,1], got %v", p.UniquenessThreshold)
	}
	if p.DateScore < 0 || p.NumberScore < 0 || p.StringScore < 0 || p.BooleanScore < 0 {
		return fmt.Errorf("base scores must not be negative")
	}
	if p.ImportanceBonus < 0 {
		return fmt.Errorf("importance_bonus must not be negative, got %v", p.ImportanceBonus)
	}
	return nil
}
