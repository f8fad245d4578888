package notification

import (
	"context"

	"github.com/taskora/taskora-backend-go/internal/pkg/sse"
)

// Service defines the notification service interface
type Service interface {
	// Queue notification (async processing via background workers)
	Queue(ctx context.Context, req CreateNotificationRequest) error
	QueueMany(ctx context.Context, reqs []CreateNotificationRequest) error

	// Direct operations
	List(ctx context.Context, userID string, unreadOnly bool) (NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID string, notificationID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID string) error

	// Live stream subscription
	Subscribe(userID string) (chan sse.Event, func())

	// Lifecycle
	Stop()
}
