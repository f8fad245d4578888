package whiteboard

import "errors"

var (
	ErrWhiteboardNotFound = errors.New("whiteboard not found")
	ErrNotWhiteboardOwner = errors.New("only the whiteboard owner can modify this document")
	ErrSnapshotTooLarge   = errors.New("snapshot exceeds the maximum allowed size")
)
