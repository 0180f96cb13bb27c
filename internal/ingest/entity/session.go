package entity

// Session groups the uploads of one analysis workflow.
//
// Descriptors only live as long as their session; closing the session
// discards every upload in it. At most one upload is active at a time, the
// one feeding the column-selection step.
type Session struct {
	ID             string
	CreatedAt      int64
	ActiveUploadID string
}
