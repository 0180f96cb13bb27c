package usecase

import (
	"io"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/analytics"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
)

// UploadInput carries everything the driver needs to accept a file. Body is
// read asynchronously, so it must stay valid until processing finishes.
type UploadInput struct {
	Filename  string
	SizeBytes int64
	MIMEType  string
	Tool      entity.ToolType
	Body      io.Reader
}

// AcceptResult is returned as soon as an upload is queued.
type AcceptResult struct {
	SessionID string
	UploadID  string
	Status    entity.UploadStatus
}

type SessionResult struct {
	SessionID      string
	CreatedAt      int64
	ActiveUploadID string
	Uploads        []UploadResult
}

type UploadResult struct {
	SessionID   string
	UploadID    string
	Filename    string
	SizeBytes   int64
	MIMEType    string
	Tool        entity.ToolType
	Status      entity.UploadStatus
	Err         string
	UploadedAt  int64
	StartedAt   int64
	EndedAt     int64
	RowCount    int64
	ColumnCount int
	Columns     []entity.ColumnDescriptor
}

type KPIResult struct {
	SessionID string
	UploadID  string
	Tool      entity.ToolType
	Range     analytics.Range
	KPIs      analytics.KPIs
}

func toUploadResult(meta entity.UploadMeta, columns []entity.ColumnDescriptor) UploadResult {
	return UploadResult{
		SessionID:   meta.SessionID,
		UploadID:    meta.ID,
		Filename:    meta.Filename,
		SizeBytes:   meta.SizeBytes,
		MIMEType:    meta.MIMEType,
		Tool:        meta.Tool,
		Status:      meta.Status,
		Err:         meta.Err,
		UploadedAt:  meta.UploadedAt,
		StartedAt:   meta.StartedAt,
		EndedAt:     meta.EndedAt,
		RowCount:    meta.RowCount,
		ColumnCount: meta.ColumnCount,
		Columns:     columns,
	}
}
