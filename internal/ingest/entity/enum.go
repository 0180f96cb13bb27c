package entity

import "strings"

// ToolType identifies which security product exported an uploaded file.
type ToolType string

const (
	ToolSIEM      ToolType = "SIEM"
	ToolEDR       ToolType = "EDR"
	ToolMDM       ToolType = "MDM"
	ToolMeraki    ToolType = "MERAKI"
	ToolGSuite    ToolType = "GSUITE"
	ToolSonicWall ToolType = "SONICWALL"
)

// ParseToolType matches a raw tool tag case-insensitively.
func ParseToolType(value string) (ToolType, bool) {
	switch ToolType(strings.ToUpper(strings.TrimSpace(value))) {
	case ToolSIEM:
		return ToolSIEM, true
	case ToolEDR:
		return ToolEDR, true
	case ToolMDM:
		return ToolMDM, true
	case ToolMeraki:
		return ToolMeraki, true
	case ToolGSuite:
		return ToolGSuite, true
	case ToolSonicWall:
		return ToolSonicWall, true
	default:
		return "", false
	}
}

// UploadStatus tracks an upload through its lifecycle.
type UploadStatus string

const (
	UploadStatusQueued     UploadStatus = "QUEUED"
	UploadStatusProcessing UploadStatus = "PROCESSING"
	UploadStatusReady      UploadStatus = "READY"
	UploadStatusFailed     UploadStatus = "FAILED"
)

// ColumnType is the inferred primitive type of a CSV column.
type ColumnType string

const (
	ColumnString  ColumnType = "string"
	ColumnNumber  ColumnType = "number"
	ColumnDate    ColumnType = "date"
	ColumnBoolean ColumnType = "boolean"
)
