package file

import "context"

type FileRepository interface {
	Create(ctx context.Context, record FileRecord) (FileRecord, error)
	GetByID(ctx context.Context, id string) (FileRecord, error)
	GetByStoragePath(ctx context.Context, storagePath string) (FileRecord, error)
	List(ctx context.Context) ([]FileRecord, error)
	Delete(ctx context.Context, id string) error
}
