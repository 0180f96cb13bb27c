package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/analytics"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/inference"
	"github.com/Dakshp001/SOC-Central-sub003/internal/pkg/pkgerror"
)

// Spreadsheet parsing was removed after a vulnerability in the parser; the
// extensions stay blocked with an instruction instead of a silent failure.
const spreadsheetMsg = "spreadsheet uploads are disabled, convert the file to CSV and upload it again"

func checkFormat(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return nil
	case ".xlsx", ".xls":
		return pkgerror.NewUnsupportedFormat(spreadsheetMsg)
	default:
		return pkgerror.NewUnsupportedFormat("only CSV uploads are supported")
	}
}

// parseCSV reads the whole file and infers a descriptor per header column.
// Any read error fails the upload as a whole; partial results never leave
// this function.
func parseCSV(ctx context.Context, r io.Reader, classifier *inference.Classifier) ([]entity.ColumnDescriptor, []entity.Record, int64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, 0, errors.New("csv file is empty")
	}
	if err != nil {
		return nil, nil, 0, fmt.Errorf("read csv header: %w", err)
	}

	names, err := headerNames(header)
	if err != nil {
		return nil, nil, 0, err
	}

	sampleSize := classifier.SampleSize()
	samples := make([][]string, len(names))
	var fieldRows []map[string]string
	var rows int64

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.WarnContext(ctx, "failed to read csv row", "error", err)
			return nil, nil, rows, fmt.Errorf("read csv row: %w", err)
		}

		rows++
		fields := make(map[string]string, len(names))
		for i, name := range names {
			value := ""
			if i < len(record) {
				value = record[i]
			}
			fields[name] = value
			if len(samples[i]) < sampleSize {
				samples[i] = append(samples[i], value)
			}
		}
		fieldRows = append(fieldRows, fields)
	}

	columns := make([]entity.ColumnDescriptor, len(names))
	for i, name := range names {
		columns[i] = classifier.Describe(name, samples[i])
	}

	// Resolve row timestamps against the strongest timestamp column so the
	// KPI date-range filter has something to cut on.
	tsColumn := analytics.TimestampColumn(columns)
	records := make([]entity.Record, len(fieldRows))
	for i, fields := range fieldRows {
		rec := entity.Record{Fields: fields}
		if tsColumn != "" {
			if ts, ok := inference.ParseTimestamp(fields[tsColumn]); ok {
				rec.Timestamp = ts
			}
		}
		records[i] = rec
	}

	return columns, records, rows, nil
}

func headerNames(header []string) ([]string, error) {
	if len(header) == 0 {
		return nil, errors.New("csv header is empty")
	}

	names := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, raw := range header {
		if i == 0 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}

		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, fmt.Errorf("csv header column %d is empty", i+1)
		}
		if !utf8.ValidString(name) || strings.ContainsRune(name, '\x00') {
			return nil, errors.New("file does not look like a text csv")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate csv column %q", name)
		}
		seen[name] = struct{}{}
		names[i] = name
	}

	return names, nil
}
