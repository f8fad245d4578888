package whiteboard

import (
	"encoding/base64"
	"time"

	"github.com/taskora/taskora-backend-go/internal/pkg/validator"
)

// MaxSnapshotBytes caps a single raster snapshot (8 MiB decoded).
const MaxSnapshotBytes = 8 << 20

type SaveWhiteboardRequest struct {
	Name     string `json:"name"`
	Snapshot string `json:"snapshot"` // base64-encoded raster image
	MimeType string `json:"mime_type"`
	IsShared bool   `json:"is_shared"`
}

func (r *SaveWhiteboardRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if !validator.MaxLen(r.Name, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Snapshot) {
		errs = append(errs, validator.ValidationError{
			Field:   "snapshot",
			Message: "snapshot is required",
		})
	} else if _, err := r.DecodeSnapshot(); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "snapshot",
			Message: "snapshot must be valid base64",
		})
	}

	if r.MimeType == "" {
		r.MimeType = "image/png"
	} else if !validator.IsInSlice(r.MimeType, []string{"image/png", "image/jpeg", "image/webp"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "mime_type",
			Message: "mime_type must be one of: image/png, image/jpeg, image/webp",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DecodeSnapshot returns the raw snapshot bytes. These are stored verbatim;
// the server never re-encodes the image.
func (r *SaveWhiteboardRequest) DecodeSnapshot() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.Snapshot)
}

type WhiteboardResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Snapshot  string    `json:"snapshot,omitempty"` // base64, verbatim round-trip
	MimeType  string    `json:"mime_type"`
	IsShared  bool      `json:"is_shared"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w Whiteboard) ToResponse(includeSnapshot bool) WhiteboardResponse {
	resp := WhiteboardResponse{
		ID:        w.ID,
		OwnerID:   w.OwnerID,
		Name:      w.Name,
		MimeType:  w.MimeType,
		IsShared:  w.IsShared,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if includeSnapshot {
		resp.Snapshot = base64.StdEncoding.EncodeToString(w.Snapshot)
	}
	return resp
}
