package file

import "time"

// FileRecord is metadata only; the payload lives in object storage under
// StoragePath.
type FileRecord struct {
	ID          string
	OwnerID     string
	DisplayName string
	MimeType    string
	SizeBytes   int64
	StoragePath string
	SubjectTag  *string
	CreatedAt   time.Time

	// Join
	OwnerName *string
}
