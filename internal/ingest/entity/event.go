package entity

// UploadActivityEvent is emitted when an upload reaches a terminal status.
type UploadActivityEvent struct {
	EventID    string
	SessionID  string
	UploadID   string
	Filename   string
	Tool       ToolType
	Status     UploadStatus
	Err        string
	RowCount   int64
	Columns    int
	FinishedAt int64
}
