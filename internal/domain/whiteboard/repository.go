package whiteboard

import "context"

type WhiteboardRepository interface {
	Create(ctx context.Context, w Whiteboard) (Whiteboard, error)
	GetByID(ctx context.Context, id string) (Whiteboard, error)

	// ListVisible returns documents the user owns plus shared ones, without
	// snapshot payloads.
	ListVisible(ctx context.Context, userID string) ([]Whiteboard, error)

	Update(ctx context.Context, w Whiteboard) error
	Delete(ctx context.Context, id string) error
}
