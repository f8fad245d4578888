package file

import "time"

type FileResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	OwnerName   *string   `json:"owner_name,omitempty"`
	DisplayName string    `json:"display_name"`
	MimeType    string    `json:"mime_type"`
	SizeBytes   int64     `json:"size_bytes"`
	SubjectTag  *string   `json:"subject_tag,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (f FileRecord) ToResponse() FileResponse {
	return FileResponse{
		ID:          f.ID,
		OwnerID:     f.OwnerID,
		OwnerName:   f.OwnerName,
		DisplayName: f.DisplayName,
		MimeType:    f.MimeType,
		SizeBytes:   f.SizeBytes,
		SubjectTag:  f.SubjectTag,
		CreatedAt:   f.CreatedAt,
	}
}

type SignedURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
