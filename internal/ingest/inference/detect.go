package inference

import (
	"strconv"
	"strings"
	"time"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
)

// dateLayouts are the textual timestamp formats seen across security tool
// exports. Order matters: the most common formats come first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// Epoch values outside this window are treated as plain numbers, not dates.
const (
	epochMinYear = 2000
	epochMaxYear = 2100
)

var booleanTokens = map[string]struct{}{
	"true":  {},
	"false": {},
	"1":     {},
	"0":     {},
	"yes":   {},
	"no":    {},
}

// DetectType infers the primitive type of a column from its sample values.
//
// Null and empty values are dropped first; an empty remainder means string.
// The fraction of values parseable as date, number, and boolean decides the
// type with priority date, then number, then boolean. A value such as a Unix
// epoch can be plausible as both date and number; the priority order settles
// it. Columns below the threshold for every candidate degrade to string, so
// detection always returns a usable type.
func (c *Classifier) DetectType(sample []string) entity.ColumnType {
	values := make([]string, 0, len(sample))
	for _, v := range sample {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return entity.ColumnString
	}

	var dates, numbers, booleans int
	for _, v := range values {
		if _, ok := ParseTimestamp(v); ok {
			dates++
		}
		if isNumber(v) {
			numbers++
		}
		if isBooleanToken(v) {
			booleans++
		}
	}

	total := float64(len(values))
	switch {
	case float64(dates)/total >= c.profile.TypeThreshold:
		return entity.ColumnDate
	case float64(numbers)/total >= c.profile.TypeThreshold:
		return entity.ColumnNumber
	case float64(booleans)/total >= c.profile.TypeThreshold:
		return entity.ColumnBoolean
	default:
		return entity.ColumnString
	}
}

// ParseTimestamp parses a single cell value as a point in time.
//
// It accepts the textual layouts in dateLayouts plus bare Unix epochs in
// seconds (10 digits) or milliseconds (13 digits) within a sane year window.
func ParseTimestamp(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}

	if isDigits(v) {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, false
		}

		var t time.Time
		switch len(v) {
		case 10:
			t = time.Unix(n, 0).UTC()
		case 13:
			t = time.UnixMilli(n).UTC()
		default:
			return time.Time{}, false
		}

		if t.Year() < epochMinYear || t.Year() > epochMaxYear {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func isDigits(v string) bool {
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(v) > 0
}

func isNumber(v string) bool {
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func isBooleanToken(v string) bool {
	_, ok := booleanTokens[strings.ToLower(v)]
	return ok
}
