package inbound

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/analytics"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/audit"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/entity"
	"github.com/Dakshp001/SOC-Central-sub003/internal/ingest/usecase"
)

type SessionCreatedResponse struct {
	SessionID string `json:"session_id"`
	CreatedAt int64  `json:"created_at"`
}

func (SessionCreatedResponse) StatusCode() int {
	return http.StatusCreated
}

func (SessionCreatedResponse) Message() string {
	return "session created"
}

type SessionResponse struct {
	SessionID      string          `json:"session_id"`
	CreatedAt      int64           `json:"created_at"`
	ActiveUploadID string          `json:"active_upload_id,omitempty"`
	Uploads        []UploadSummary `json:"uploads"`
}

type UploadSummary struct {
	UploadID    string              `json:"upload_id"`
	Filename    string              `json:"filename"`
	SizeBytes   int64               `json:"size_bytes"`
	MIMEType    string              `json:"mime_type,omitempty"`
	Tool        entity.ToolType     `json:"tool"`
	Status      entity.UploadStatus `json:"status"`
	Err         string              `json:"error,omitempty"`
	UploadedAt  int64               `json:"uploaded_at"`
	StartedAt   int64               `json:"started_at,omitempty"`
	EndedAt     int64               `json:"ended_at,omitempty"`
	RowCount    int64               `json:"row_count"`
	ColumnCount int                 `json:"column_count"`
}

type UploadAcceptedResponse struct {
	SessionID string              `json:"session_id"`
	UploadID  string              `json:"upload_id"`
	Status    entity.UploadStatus `json:"status"`
}

func (UploadAcceptedResponse) StatusCode() int {
	return http.StatusAccepted
}

func (UploadAcceptedResponse) Message() string {
	return "upload accepted"
}

type UploadDetailResponse struct {
	SessionID string          `json:"session_id"`
	UploadSummary
	Columns []ColumnPayload `json:"columns"`
}

type ColumnPayload struct {
	Name         string            `json:"name"`
	Type         entity.ColumnType `json:"type"`
	IsIdentifier bool              `json:"is_identifier"`
	IsTimestamp  bool              `json:"is_timestamp"`
	IsMetric     bool              `json:"is_metric"`
	Relevance    float64           `json:"relevance"`
	Samples      []string          `json:"samples"`
}

type SetActiveRequest struct {
	UploadID string `json:"upload_id"`
}

type ActiveUploadResponse struct {
	SessionID string `json:"session_id"`
	UploadID  string `json:"upload_id"`
}

func (ActiveUploadResponse) Message() string {
	return "active upload updated"
}

type KPIResponse struct {
	SessionID string          `json:"session_id"`
	UploadID  string          `json:"upload_id"`
	Tool      entity.ToolType `json:"tool"`
	KPIs      any             `json:"kpis"`
	from      time.Time
	to        time.Time
}

func (r KPIResponse) Meta() map[string]any {
	meta := map[string]any{}
	if !r.from.IsZero() {
		meta["from"] = r.from.UTC().Format(time.RFC3339)
	}
	if !r.to.IsZero() {
		meta["to"] = r.to.UTC().Format(time.RFC3339)
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

type SIEMKPIPayload struct {
	TotalEvents   int            `json:"total_events"`
	BySeverity    map[string]int `json:"by_severity"`
	UniqueSources int            `json:"unique_sources"`
	UniqueUsers   int            `json:"unique_users"`
}

type EDRKPIPayload struct {
	TotalDetections int            `json:"total_detections"`
	ByStatus        map[string]int `json:"by_status"`
	UniqueDevices   int            `json:"unique_devices"`
	AvgRiskScore    float64        `json:"avg_risk_score"`
}

type MDMKPIPayload struct {
	TotalDevices  int            `json:"total_devices"`
	ByPlatform    map[string]int `json:"by_platform"`
	UniqueDevices int            `json:"unique_devices"`
}

type MerakiKPIPayload struct {
	TotalEvents    int            `json:"total_events"`
	ByType         map[string]int `json:"by_type"`
	UniqueNetworks int            `json:"unique_networks"`
}

type GSuiteKPIPayload struct {
	TotalActivities int            `json:"total_activities"`
	ByActivity      map[string]int `json:"by_activity"`
	UniqueUsers     int            `json:"unique_users"`
}

type SonicWallKPIPayload struct {
	TotalEvents        int            `json:"total_events"`
	ByCategory         map[string]int `json:"by_category"`
	UniqueSources      int            `json:"unique_sources"`
	UniqueDestinations int            `json:"unique_destinations"`
}

// toKPIPayload maps every variant of the sealed KPI set onto its wire shape.
// A missing case here is a bug, hence the error instead of a silent zero.
func toKPIPayload(kpis analytics.KPIs) (any, error) {
	switch v := kpis.(type) {
	case analytics.SIEMKPIs:
		return SIEMKPIPayload{
			TotalEvents:   v.TotalEvents,
			BySeverity:    v.BySeverity,
			UniqueSources: v.UniqueSources,
			UniqueUsers:   v.UniqueUsers,
		}, nil
	case analytics.EDRKPIs:
		return EDRKPIPayload{
			TotalDetections: v.TotalDetections,
			ByStatus:        v.ByStatus,
			UniqueDevices:   v.UniqueDevices,
			AvgRiskScore:    v.AvgRiskScore,
		}, nil
	case analytics.MDMKPIs:
		return MDMKPIPayload{
			TotalDevices:  v.TotalDevices,
			ByPlatform:    v.ByPlatform,
			UniqueDevices: v.UniqueDevices,
		}, nil
	case analytics.MerakiKPIs:
		return MerakiKPIPayload{
			TotalEvents:    v.TotalEvents,
			ByType:         v.ByType,
			UniqueNetworks: v.UniqueNetworks,
		}, nil
	case analytics.GSuiteKPIs:
		return GSuiteKPIPayload{
			TotalActivities: v.TotalActivities,
			ByActivity:      v.ByActivity,
			UniqueUsers:     v.UniqueUsers,
		}, nil
	case analytics.SonicWallKPIs:
		return SonicWallKPIPayload{
			TotalEvents:        v.TotalEvents,
			ByCategory:         v.ByCategory,
			UniqueSources:      v.UniqueSources,
			UniqueDestinations: v.UniqueDestinations,
		}, nil
	default:
		return nil, fmt.Errorf("unhandled kpi variant %T", kpis)
	}
}

type ActivityEntry struct {
	Seq        int64  `json:"seq"`
	SessionID  string `json:"session_id"`
	UploadID   string `json:"upload_id"`
	Filename   string `json:"filename"`
	Tool       string `json:"tool"`
	Status     string `json:"status"`
	Err        string `json:"error,omitempty"`
	RowCount   int64  `json:"row_count"`
	Columns    int    `json:"columns"`
	FinishedAt int64  `json:"finished_at"`
}

type ActivityResponse struct {
	Entries []ActivityEntry `json:"entries"`
	count   int
}

func (r ActivityResponse) Meta() map[string]any {
	return map[string]any{"count": r.count}
}

func toSessionResponse(result usecase.SessionResult) SessionResponse {
	uploads := make([]UploadSummary, 0, len(result.Uploads))
	for _, upload := range result.Uploads {
		uploads = append(uploads, toUploadSummary(upload))
	}

	return SessionResponse{
		SessionID:      result.SessionID,
		CreatedAt:      result.CreatedAt,
		ActiveUploadID: result.ActiveUploadID,
		Uploads:        uploads,
	}
}

func toUploadSummary(result usecase.UploadResult) UploadSummary {
	return UploadSummary{
		UploadID:    result.UploadID,
		Filename:    result.Filename,
		SizeBytes:   result.SizeBytes,
		MIMEType:    result.MIMEType,
		Tool:        result.Tool,
		Status:      result.Status,
		Err:         result.Err,
		UploadedAt:  result.UploadedAt,
		StartedAt:   result.StartedAt,
		EndedAt:     result.EndedAt,
		RowCount:    result.RowCount,
		ColumnCount: result.ColumnCount,
	}
}

func toUploadDetailResponse(result usecase.UploadResult) UploadDetailResponse {
	columns := make([]ColumnPayload, 0, len(result.Columns))
	for _, col := range result.Columns {
		columns = append(columns, ColumnPayload{
			Name:         col.Name,
			Type:         col.Type,
			IsIdentifier: col.IsIdentifier,
			IsTimestamp:  col.IsTimestamp,
			IsMetric:     col.IsMetric,
			Relevance:    col.Relevance,
			Samples:      col.Samples,
		})
	}

	return UploadDetailResponse{
		SessionID:     result.SessionID,
		UploadSummary: toUploadSummary(result),
		Columns:       columns,
	}
}

func toActivityEntry(record audit.ActivityRecord) ActivityEntry {
	return ActivityEntry{
		Seq:        record.Seq,
		SessionID:  record.SessionID,
		UploadID:   record.UploadID,
		Filename:   record.Filename,
		Tool:       record.Tool,
		Status:     record.Status,
		Err:        record.Err,
		RowCount:   record.RowCount,
		Columns:    record.Columns,
		FinishedAt: record.FinishedAt,
	}
}
