package entity

import "time"

// ColumnDescriptor is the inference result for one CSV column.
//
// Descriptors are assembled once during processing and never mutated after
// they are stored.
type ColumnDescriptor struct {
	Name         string
	Type         ColumnType
	IsIdentifier bool
	IsTimestamp  bool
	IsMetric     bool
	Relevance    float64
	Samples      []string
}

// Record is one parsed data row keyed by column name.
//
// Timestamp is resolved from the most relevant timestamp column of the
// upload and stays zero when the row has no usable timestamp value.
type Record struct {
	Timestamp time.Time
	Fields    map[string]string
}
