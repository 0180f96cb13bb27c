package entity

type UploadMeta struct {
	ID         string
	SessionID  string
	Filename   string
	SizeBytes  int64
	MIMEType   string
	Tool       ToolType
	Status     UploadStatus
	Err        string
	UploadedAt int64
	StartedAt  int64
	EndedAt    int64

	// Stats help observability without storing everything
	RowCount    int64
	ColumnCount int
}
