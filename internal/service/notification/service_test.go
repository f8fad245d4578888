package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "github.com/taskora/taskora-backend-go/internal/domain/notification"
	"github.com/taskora/taskora-backend-go/internal/pkg/sse"
)

type fakeNotificationRepo struct {
	mu     sync.Mutex
	nextID int
	stored []*domain.Notification
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, notifications []*domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range notifications {
		f.nextID++
		n.ID = fmt.Sprintf("notif-%d", f.nextID)
		n.CreatedAt = time.Now()
		copied := *n
		f.stored = append(f.stored, &copied)
	}
	return nil
}

func (f *fakeNotificationRepo) GetByUserID(_ context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.Notification
	for _, n := range f.stored {
		if n.RecipientID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, n := range f.stored {
		if n.RecipientID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, id string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range f.stored {
		if n.ID == id && n.RecipientID == userID && !n.IsRead {
			now := time.Now()
			n.IsRead = true
			n.ReadAt = &now
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	for _, n := range f.stored {
		if n.RecipientID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, n := range f.stored {
		if n.ID == id && n.RecipientID == userID {
			f.stored = append(f.stored[:i], f.stored[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) storedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stored)
}

func TestQueue_BatchLandsOnSizeThreshold(t *testing.T) {
	repo := &fakeNotificationRepo{}
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, Config{
		BatchSize:     2,
		FlushInterval: time.Minute,
		WorkerCount:   1,
		QueueSize:     10,
	})
	defer svc.Stop()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		err := svc.Queue(ctx, domain.CreateNotificationRequest{
			RecipientID: "user-1",
			Category:    domain.CategorySystem,
			Title:       "hello",
		})
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		return repo.storedCount() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestQueue_TickerFlushesPartialBatch(t *testing.T) {
	repo := &fakeNotificationRepo{}
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, Config{
		BatchSize:     100,
		FlushInterval: 10 * time.Millisecond,
		WorkerCount:   1,
		QueueSize:     10,
	})
	defer svc.Stop()

	err := svc.Queue(context.Background(), domain.CreateNotificationRequest{
		RecipientID: "user-1",
		Category:    domain.CategoryTaskCreated,
		Title:       "one",
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return repo.storedCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestQueue_SubscriberReceivesAfterBatchLands(t *testing.T) {
	repo := &fakeNotificationRepo{}
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, Config{
		BatchSize:     1,
		FlushInterval: time.Minute,
		WorkerCount:   1,
		QueueSize:     10,
	})
	defer svc.Stop()

	events, cleanup := svc.Subscribe("user-1")
	defer cleanup()

	err := svc.Queue(context.Background(), domain.CreateNotificationRequest{
		RecipientID: "user-1",
		Category:    domain.CategoryStaffJoined,
		Title:       "Staff member added",
	})
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "notification", event.Name)
		resp, ok := event.Data.(domain.NotificationResponse)
		require.True(t, ok)
		assert.Equal(t, domain.CategoryStaffJoined, resp.Category)
		assert.NotEmpty(t, resp.ID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for stream event")
	}
}

func TestStop_DrainsQueuedNotifications(t *testing.T) {
	repo := &fakeNotificationRepo{}
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, Config{
		BatchSize:     100,
		FlushInterval: time.Minute,
		WorkerCount:   1,
		QueueSize:     10,
	})
	ctx := context.Background()

	// Stop races the worker's select; anything accepted by Queue must still
	// land, not just the worker's current batch.
	for i := 0; i < 5; i++ {
		err := svc.Queue(ctx, domain.CreateNotificationRequest{
			RecipientID: "user-1",
			Category:    domain.CategorySystem,
			Title:       "pending",
		})
		require.NoError(t, err)
	}
	svc.Stop()

	assert.Equal(t, 5, repo.storedCount())
}

func TestQueue_FullQueueReturnsError(t *testing.T) {
	// No workers draining; the channel fills immediately.
	s := &service{
		repo:   &fakeNotificationRepo{},
		hub:    sse.NewHub(),
		config: Config{BatchSize: 1},
		queue:  make(chan domain.CreateNotificationRequest, 1),
		stopCh: make(chan struct{}),
	}
	ctx := context.Background()

	require.NoError(t, s.Queue(ctx, domain.CreateNotificationRequest{RecipientID: "user-1"}))
	err := s.Queue(ctx, domain.CreateNotificationRequest{RecipientID: "user-1"})
	assert.ErrorIs(t, err, domain.ErrQueueFull)
}

func TestList_ReportsUnreadCount(t *testing.T) {
	repo := &fakeNotificationRepo{}
	require.NoError(t, repo.CreateBatch(context.Background(), []*domain.Notification{
		{RecipientID: "user-1", Category: domain.CategorySystem, Title: "a"},
		{RecipientID: "user-1", Category: domain.CategorySystem, Title: "b"},
		{RecipientID: "user-2", Category: domain.CategorySystem, Title: "other"},
	}))

	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, Config{WorkerCount: 1})
	defer svc.Stop()
	ctx := context.Background()

	list, err := svc.List(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, 2, list.UnreadCount)

	require.NoError(t, svc.MarkAsRead(ctx, "user-1", list.Notifications[0].ID))

	list, err = svc.List(ctx, "user-1", true)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 1)
	assert.Equal(t, 1, list.UnreadCount)
}

func TestMarkAsRead_RefusesOtherUsersNotification(t *testing.T) {
	repo := &fakeNotificationRepo{}
	require.NoError(t, repo.CreateBatch(context.Background(), []*domain.Notification{
		{RecipientID: "user-1", Category: domain.CategorySystem, Title: "a"},
	}))

	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, Config{WorkerCount: 1})
	defer svc.Stop()

	err := svc.MarkAsRead(context.Background(), "user-2", "notif-1")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}
