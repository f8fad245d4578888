package whiteboard

import "context"

type WhiteboardService interface {
	Create(ctx context.Context, ownerID string, req SaveWhiteboardRequest) (WhiteboardResponse, error)

	// Get returns the document with its snapshot payload.
	Get(ctx context.Context, id string, callerID string) (WhiteboardResponse, error)

	// List returns visible documents without snapshot payloads.
	List(ctx context.Context, callerID string) ([]WhiteboardResponse, error)

	// Save persists immediately.
	Save(ctx context.Context, id string, callerID string, req SaveWhiteboardRequest) (WhiteboardResponse, error)

	// Autosave coalesces rapid saves per document: only the latest snapshot
	// within the debounce window is written.
	Autosave(ctx context.Context, id string, callerID string, req SaveWhiteboardRequest) error

	Delete(ctx context.Context, id string, callerID string) error

	// Stop flushes pending autosaves.
	Stop()
}
