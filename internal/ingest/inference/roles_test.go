package inference

import (
	"testing"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
)

func TestIsIdentifierByName(t *testing.T) {
	t.Parallel()

	c := New(DefaultProfile())
	for _, name := range []string{"event_id", "Identifier", "device_uuid", "api_key", "serial_no", "IMEI"} {
		if !c.IsIdentifier(name, []string{"a", "a", "a"}) {
			t.Fatalf("IsIdentifier(%q) = false, want true", name)
		}
	}
}

func TestIsIdentifierByUniqueness(t *testing.T) {
	t.Parallel()

	c := New(DefaultProfile())

	if !c.IsIdentifier("payload", []string{"a", "b", "c", "d", "e"}) {
		t.Fatal("IsIdentifier() = false for fully distinct sample, want true")
	}
	if c.IsIdentifier("payload", []string{"a", "a", "b", "b", "c"}) {
		t.Fatal("IsIdentifier() = true for repetitive sample, want false")
	}

	// Exactly 90% distinct does not exceed the threshold.
	nineOfTen := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "a"}
	if c.IsIdentifier("payload", nineOfTen) {
		t.Fatal("IsIdentifier() = true at the uniqueness boundary, want false")
	}

	if c.IsIdentifier("payload", nil) {
		t.Fatal("IsIdentifier() = true for empty sample, want false")
	}
}

func TestIsTimestamp(t *testing.T) {
	t.Parallel()

	c := New(DefaultProfile())

	if !c.IsTimestamp("anything", entity.ColumnDate) {
		t.Fatal("IsTimestamp() = false for date type, want true")
	}
	if !c.IsTimestamp("last_seen", entity.ColumnString) {
		t.Fatal("IsTimestamp() = false for keyword name, want true")
	}
	if !c.IsTimestamp("createdOn", entity.ColumnString) {
		t.Fatal("IsTimestamp() = false for created keyword, want true")
	}
	if c.IsTimestamp("severity", entity.ColumnNumber) {
		t.Fatal("IsTimestamp() = true for plain numeric column, want false")
	}
}

func TestIsMetric(t *testing.T) {
	t.Parallel()

	c := New(DefaultProfile())

	if !c.IsMetric("severity_score", entity.ColumnNumber) {
		t.Fatal("IsMetric() = false for numeric score column, want true")
	}
	if !c.IsMetric("event_count", entity.ColumnNumber) {
		t.Fatal("IsMetric() = false for numeric count column, want true")
	}

	// Both conditions are required.
	if c.IsMetric("severity_score", entity.ColumnString) {
		t.Fatal("IsMetric() = true for string column, want false")
	}
	if c.IsMetric("amount", entity.ColumnNumber) {
		t.Fatal("IsMetric() = true without a metric keyword, want false")
	}
}
