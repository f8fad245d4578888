package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskora/taskora-backend-go/internal/domain/file"
	"github.com/taskora/taskora-backend-go/internal/pkg/jwt"
	"github.com/taskora/taskora-backend-go/internal/pkg/storage"
)

// MaxUploadBytes caps a single upload (25 MiB).
const MaxUploadBytes = 25 << 20

// DefaultSignedURLTTL is how long a minted download link stays valid.
const DefaultSignedURLTTL = 15 * time.Minute

type FileServiceImpl struct {
	file.FileRepository
	storage storage.FileStorage
	jwt     jwt.Service
	baseURL string
}

func NewFileService(
	fileRepository file.FileRepository,
	fileStorage storage.FileStorage,
	jwtService jwt.Service,
	baseURL string,
) file.FileService {
	return &FileServiceImpl{
		FileRepository: fileRepository,
		storage:        fileStorage,
		jwt:            jwtService,
		baseURL:        strings.TrimRight(baseURL, "/"),
	}
}

// Upload implements file.FileService. The payload goes to object storage
// first; if the metadata insert fails the object is removed again so storage
// and database cannot drift apart.
func (s *FileServiceImpl) Upload(ctx context.Context, input file.UploadInput) (file.FileResponse, error) {
	if input.SizeBytes <= 0 {
		return file.FileResponse{}, file.ErrEmptyUpload
	}
	if input.SizeBytes > MaxUploadBytes {
		return file.FileResponse{}, file.ErrFileTooLarge
	}

	ext := path.Ext(input.DisplayName)
	storagePath := fmt.Sprintf("files/%s%s", uuid.New().String(), ext)

	storedPath, err := s.storage.Upload(ctx, io.LimitReader(input.Content, MaxUploadBytes), storagePath, input.MimeType)
	if err != nil {
		return file.FileResponse{}, fmt.Errorf("failed to store file: %w", err)
	}

	record, err := s.FileRepository.Create(ctx, file.FileRecord{
		OwnerID:     input.OwnerID,
		DisplayName: input.DisplayName,
		MimeType:    input.MimeType,
		SizeBytes:   input.SizeBytes,
		StoragePath: storedPath,
		SubjectTag:  input.SubjectTag,
	})
	if err != nil {
		// Compensate: metadata never landed, so the object must not stay.
		_ = s.storage.Delete(ctx, storedPath)
		return file.FileResponse{}, err
	}

	return record.ToResponse(), nil
}

// List implements file.FileService.
func (s *FileServiceImpl) List(ctx context.Context) ([]file.FileResponse, error) {
	records, err := s.FileRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]file.FileResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, rec.ToResponse())
	}
	return responses, nil
}

// Delete implements file.FileService. The metadata row goes first; only when
// it is gone is the object removed. A dangling object is recoverable, a
// dangling row is not.
func (s *FileServiceImpl) Delete(ctx context.Context, id string, callerID string, callerIsSuperAdmin bool) error {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if record.OwnerID != callerID && !callerIsSuperAdmin {
		return file.ErrNotFileOwner
	}

	if err := s.FileRepository.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, record.StoragePath); err != nil {
		return fmt.Errorf("failed to delete stored object: %w", err)
	}
	return nil
}

// SignedURL implements file.FileService.
func (s *FileServiceImpl) SignedURL(ctx context.Context, id string, ttl time.Duration) (file.SignedURLResponse, error) {
	if ttl <= 0 {
		ttl = DefaultSignedURLTTL
	}

	record, err := s.GetByID(ctx, id)
	if err != nil {
		return file.SignedURLResponse{}, err
	}

	token, err := s.jwt.GenerateDownloadToken(record.StoragePath, ttl)
	if err != nil {
		return file.SignedURLResponse{}, fmt.Errorf("failed to sign download token: %w", err)
	}

	return file.SignedURLResponse{
		URL:       fmt.Sprintf("%s/api/v1/files/download?token=%s", s.baseURL, token),
		ExpiresIn: int(ttl.Seconds()),
	}, nil
}

// OpenSigned implements file.FileService.
func (s *FileServiceImpl) OpenSigned(ctx context.Context, token string) (io.ReadCloser, file.FileRecord, error) {
	storagePath, err := s.jwt.ValidateDownloadToken(token)
	if err != nil {
		return nil, file.FileRecord{}, file.ErrInvalidSignature
	}

	record, err := s.GetByStoragePath(ctx, storagePath)
	if err != nil {
		return nil, file.FileRecord{}, err
	}

	reader, err := s.storage.Download(ctx, record.StoragePath)
	if err != nil {
		return nil, file.FileRecord{}, fmt.Errorf("failed to open stored object: %w", err)
	}
	return reader, record, nil
}
