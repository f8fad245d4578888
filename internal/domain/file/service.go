package file

import (
	"context"
	"io"
	"time"
)

// UploadInput carries one multipart upload into the service.
type UploadInput struct {
	OwnerID     string
	DisplayName string
	MimeType    string
	SizeBytes   int64
	SubjectTag  *string
	Content     io.Reader
}

type FileService interface {
	Upload(ctx context.Context, input UploadInput) (FileResponse, error)
	List(ctx context.Context) ([]FileResponse, error)

	// Delete removes both payload and metadata. Only the owner or a super
	// admin may delete.
	Delete(ctx context.Context, id string, callerID string, callerIsSuperAdmin bool) error

	// SignedURL mints a time-limited download link for a stored file.
	SignedURL(ctx context.Context, id string, ttl time.Duration) (SignedURLResponse, error)

	// OpenSigned validates a signed token and streams the payload it names.
	OpenSigned(ctx context.Context, token string) (io.ReadCloser, FileRecord, error)
}
