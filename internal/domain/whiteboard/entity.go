package whiteboard

import "time"

// Whiteboard holds a raster snapshot of the drawing canvas. Snapshot bytes
// are stored exactly as received so a reload renders pixel-identical content.
type Whiteboard struct {
	ID        string
	OwnerID   string
	Name      string
	Snapshot  []byte
	MimeType  string
	IsShared  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VisibleTo reports whether a user may read this document.
func (w Whiteboard) VisibleTo(userID string) bool {
	return w.IsShared || w.OwnerID == userID
}
