package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taskora/taskora-backend-go/internal/domain/file"
	"github.com/taskora/taskora-backend-go/internal/pkg/database"
)

type fileRepository struct {
	db *database.DB
}

func NewFileRepository(db *database.DB) file.FileRepository {
	return &fileRepository{db: db}
}

// Create implements file.FileRepository.
func (r *fileRepository) Create(ctx context.Context, record file.FileRecord) (file.FileRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO file_metadata (owner_id, display_name, mime_type, size_bytes, storage_path, subject_tag)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		record.OwnerID,
		record.DisplayName,
		record.MimeType,
		record.SizeBytes,
		record.StoragePath,
		record.SubjectTag,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return file.FileRecord{}, fmt.Errorf("failed to create file record: %w", err)
	}

	return record, nil
}

// GetByID implements file.FileRepository.
func (r *fileRepository) GetByID(ctx context.Context, id string) (file.FileRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT f.id, f.owner_id, f.display_name, f.mime_type, f.size_bytes, f.storage_path,
		       f.subject_tag, f.created_at,
		       p.full_name AS owner_name
		FROM file_metadata f
		LEFT JOIN profiles p ON p.user_id = f.owner_id
		WHERE f.id = $1
	`

	var rec file.FileRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.OwnerID, &rec.DisplayName, &rec.MimeType, &rec.SizeBytes, &rec.StoragePath,
		&rec.SubjectTag, &rec.CreatedAt,
		&rec.OwnerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return file.FileRecord{}, file.ErrFileNotFound
		}
		return file.FileRecord{}, fmt.Errorf("failed to get file record: %w", err)
	}

	return rec, nil
}

// GetByStoragePath implements file.FileRepository. Signed download tokens
// name files by storage path, not id.
func (r *fileRepository) GetByStoragePath(ctx context.Context, storagePath string) (file.FileRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_id, display_name, mime_type, size_bytes, storage_path, subject_tag, created_at
		FROM file_metadata
		WHERE storage_path = $1
	`

	var rec file.FileRecord
	err := q.QueryRow(ctx, query, storagePath).Scan(
		&rec.ID, &rec.OwnerID, &rec.DisplayName, &rec.MimeType, &rec.SizeBytes, &rec.StoragePath,
		&rec.SubjectTag, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return file.FileRecord{}, file.ErrFileNotFound
		}
		return file.FileRecord{}, fmt.Errorf("failed to get file record: %w", err)
	}

	return rec, nil
}

// List implements file.FileRepository.
func (r *fileRepository) List(ctx context.Context) ([]file.FileRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT f.id, f.owner_id, f.display_name, f.mime_type, f.size_bytes, f.storage_path,
		       f.subject_tag, f.created_at,
		       p.full_name AS owner_name
		FROM file_metadata f
		LEFT JOIN profiles p ON p.user_id = f.owner_id
		ORDER BY f.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list file records: %w", err)
	}
	defer rows.Close()

	var records []file.FileRecord
	for rows.Next() {
		var rec file.FileRecord
		if err := rows.Scan(
			&rec.ID, &rec.OwnerID, &rec.DisplayName, &rec.MimeType, &rec.SizeBytes, &rec.StoragePath,
			&rec.SubjectTag, &rec.CreatedAt,
			&rec.OwnerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete implements file.FileRepository.
func (r *fileRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM file_metadata WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return file.ErrFileNotFound
	}
	return nil
}
