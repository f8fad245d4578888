package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taskora/taskora-backend-go/internal/domain/notification"
	"github.com/taskora/taskora-backend-go/internal/pkg/sse"
)

// Config holds notification worker configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	config Config

	queue  chan notification.CreateNotificationRequest
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService creates a new notification service with background
// workers. Writes are batched; delivery to live stream subscribers happens
// after the batch lands.
func NewNotificationService(repo notification.Repository, hub *sse.Hub, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)

	return s
}

// worker drains the queue in batches.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = &notification.Notification{
				RecipientID: req.RecipientID,
				Category:    req.Category,
				Title:       req.Title,
				Description: req.Description,
			}
		}

		// IDs and timestamps come back from the insert.
		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("notification batch insert failed", "worker", id, "count", len(notifications), "error", err)
		} else {
			for _, n := range notifications {
				s.hub.Publish(n.RecipientID, sse.Event{
					Name: "notification",
					Data: n.ToResponse(),
				})
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain what was queued before stop, then do the final flush.
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// Queue implements notification.Service.
func (s *service) Queue(ctx context.Context, req notification.CreateNotificationRequest) error {
	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return notification.ErrQueueFull
	}
}

// QueueMany implements notification.Service. Partial enqueue is possible;
// the first full-queue error is returned.
func (s *service) QueueMany(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, req := range reqs {
		if err := s.Queue(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// List implements notification.Service.
func (s *service) List(ctx context.Context, userID string, unreadOnly bool) (notification.NotificationListResponse, error) {
	notifications, err := s.repo.GetByUserID(ctx, userID, unreadOnly)
	if err != nil {
		return notification.NotificationListResponse{}, err
	}

	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return notification.NotificationListResponse{}, err
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, n.ToResponse())
	}

	return notification.NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}, nil
}

// MarkAsRead implements notification.Service.
func (s *service) MarkAsRead(ctx context.Context, userID string, notificationID string) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

// MarkAllAsRead implements notification.Service.
func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Delete implements notification.Service.
func (s *service) Delete(ctx context.Context, userID string, notificationID string) error {
	return s.repo.Delete(ctx, notificationID, userID)
}

// Subscribe implements notification.Service.
func (s *service) Subscribe(userID string) (chan sse.Event, func()) {
	return s.hub.Subscribe(userID)
}

// Stop drains the queue and waits for workers to finish their final flush.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}
