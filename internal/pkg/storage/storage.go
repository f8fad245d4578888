package storage

import (
	"context"
	"io"
)

// FileStorage abstracts the object store holding file payloads. Metadata
// lives in the database; only bytes live here.
type FileStorage interface {
	// Upload writes the payload and returns the storage path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a payload
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a payload; deleting a missing object is not an error
	Delete(ctx context.Context, path string) error

	// Exists checks if an object exists
	Exists(ctx context.Context, path string) (bool, error)
}
