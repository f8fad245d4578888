package notification

import "time"

type CreateNotificationRequest struct {
	RecipientID string   `json:"recipient_id"`
	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

type NotificationResponse struct {
	ID          string     `json:"id"`
	Category    Category   `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (n Notification) ToResponse() NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Category:    n.Category,
		Title:       n.Title,
		Description: n.Description,
		IsRead:      n.IsRead,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
