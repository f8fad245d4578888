package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taskora/taskora-backend-go/internal/domain/whiteboard"
	"github.com/taskora/taskora-backend-go/internal/pkg/database"
)

type whiteboardRepository struct {
	db *database.DB
}

func NewWhiteboardRepository(db *database.DB) whiteboard.WhiteboardRepository {
	return &whiteboardRepository{db: db}
}

// Create implements whiteboard.WhiteboardRepository.
func (r *whiteboardRepository) Create(ctx context.Context, w whiteboard.Whiteboard) (whiteboard.Whiteboard, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO whiteboards (owner_id, name, snapshot, mime_type, is_shared)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		w.OwnerID,
		w.Name,
		w.Snapshot,
		w.MimeType,
		w.IsShared,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return whiteboard.Whiteboard{}, fmt.Errorf("failed to create whiteboard: %w", err)
	}

	return w, nil
}

// GetByID implements whiteboard.WhiteboardRepository.
func (r *whiteboardRepository) GetByID(ctx context.Context, id string) (whiteboard.Whiteboard, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_id, name, snapshot, mime_type, is_shared, created_at, updated_at
		FROM whiteboards
		WHERE id = $1
	`

	var w whiteboard.Whiteboard
	err := q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.OwnerID, &w.Name, &w.Snapshot, &w.MimeType, &w.IsShared, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return whiteboard.Whiteboard{}, whiteboard.ErrWhiteboardNotFound
		}
		return whiteboard.Whiteboard{}, fmt.Errorf("failed to get whiteboard: %w", err)
	}

	return w, nil
}

// ListVisible implements whiteboard.WhiteboardRepository. Snapshot payloads
// are intentionally not selected; listings only need metadata.
func (r *whiteboardRepository) ListVisible(ctx context.Context, userID string) ([]whiteboard.Whiteboard, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, owner_id, name, mime_type, is_shared, created_at, updated_at
		FROM whiteboards
		WHERE owner_id = $1 OR is_shared = TRUE
		ORDER BY updated_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list whiteboards: %w", err)
	}
	defer rows.Close()

	var boards []whiteboard.Whiteboard
	for rows.Next() {
		var w whiteboard.Whiteboard
		if err := rows.Scan(
			&w.ID, &w.OwnerID, &w.Name, &w.MimeType, &w.IsShared, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan whiteboard: %w", err)
		}
		boards = append(boards, w)
	}
	return boards, rows.Err()
}

// Update implements whiteboard.WhiteboardRepository.
func (r *whiteboardRepository) Update(ctx context.Context, w whiteboard.Whiteboard) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE whiteboards
		SET name = $1, snapshot = $2, mime_type = $3, is_shared = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, w.Name, w.Snapshot, w.MimeType, w.IsShared, w.ID)
	if err != nil {
		return fmt.Errorf("failed to update whiteboard: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return whiteboard.ErrWhiteboardNotFound
	}
	return nil
}

// Delete implements whiteboard.WhiteboardRepository.
func (r *whiteboardRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM whiteboards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete whiteboard: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return whiteboard.ErrWhiteboardNotFound
	}
	return nil
}
