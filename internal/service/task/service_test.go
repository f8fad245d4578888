package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskora/taskora-backend-go/internal/domain/notification"
	domain "github.com/taskora/taskora-backend-go/internal/domain/task"
	"github.com/taskora/taskora-backend-go/internal/pkg/sse"
)

type fakeTaskRepo struct {
	nextID int
	tasks  map[string]domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]domain.Task)}
}

func (f *fakeTaskRepo) Create(_ context.Context, t domain.Task) (domain.Task, error) {
	f.nextID++
	t.ID = fmt.Sprintf("task-%d", f.nextID)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (domain.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeTaskRepo) List(_ context.Context) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range f.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t domain.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	f.tasks[t.ID] = t
	return nil
}

func (f *fakeTaskRepo) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	t, ok := f.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Status = status
	f.tasks[id] = t
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

// fakeNotifier records queued notifications.
type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) Queue(_ context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) QueueMany(_ context.Context, reqs []notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, reqs...)
	return nil
}

func (f *fakeNotifier) List(context.Context, string, bool) (notification.NotificationListResponse, error) {
	return notification.NotificationListResponse{}, nil
}

func (f *fakeNotifier) MarkAsRead(context.Context, string, string) error { return nil }
func (f *fakeNotifier) MarkAllAsRead(context.Context, string) error      { return nil }
func (f *fakeNotifier) Delete(context.Context, string, string) error     { return nil }
func (f *fakeNotifier) Subscribe(string) (chan sse.Event, func())        { return nil, func() {} }
func (f *fakeNotifier) Stop()                                            {}

func (f *fakeNotifier) categories() []notification.Category {
	out := make([]notification.Category, 0, len(f.queued))
	for _, req := range f.queued {
		out = append(out, req.Category)
	}
	return out
}

func TestCreate_ForcesTodoStatus(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)

	created, err := svc.Create(context.Background(), "user-1", domain.CreateTaskRequest{
		Title:    "Write report",
		Priority: "high",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, created.Status)
	assert.Equal(t, "user-1", created.CreatedBy)
}

func TestCreate_QueuesNotification(t *testing.T) {
	repo := newFakeTaskRepo()
	notifier := &fakeNotifier{}
	svc := NewTaskService(repo, notifier)

	_, err := svc.Create(context.Background(), "user-1", domain.CreateTaskRequest{
		Title:    "Write report",
		Priority: "medium",
	})
	require.NoError(t, err)
	assert.Equal(t, []notification.Category{notification.CategoryTaskCreated}, notifier.categories())
}

func TestMove_ToDoneNotifiesCreator(t *testing.T) {
	repo := newFakeTaskRepo()
	notifier := &fakeNotifier{}
	svc := NewTaskService(repo, notifier)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", domain.CreateTaskRequest{Title: "Ship it", Priority: "medium"})
	require.NoError(t, err)
	notifier.queued = nil

	moved, err := svc.Move(ctx, created.ID, domain.MoveTaskRequest{Status: "done"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, moved.Status)

	require.Len(t, notifier.queued, 1)
	assert.Equal(t, notification.CategoryTaskDone, notifier.queued[0].Category)
	assert.Equal(t, "user-1", notifier.queued[0].RecipientID)
}

func TestMove_BetweenOpenColumnsIsSilent(t *testing.T) {
	repo := newFakeTaskRepo()
	notifier := &fakeNotifier{}
	svc := NewTaskService(repo, notifier)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", domain.CreateTaskRequest{Title: "Ship it", Priority: "medium"})
	require.NoError(t, err)
	notifier.queued = nil

	moved, err := svc.Move(ctx, created.ID, domain.MoveTaskRequest{Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, moved.Status)
	assert.Empty(t, notifier.queued)
}

func TestMove_DoneToDoneDoesNotRenotify(t *testing.T) {
	repo := newFakeTaskRepo()
	notifier := &fakeNotifier{}
	svc := NewTaskService(repo, notifier)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", domain.CreateTaskRequest{Title: "Ship it", Priority: "medium"})
	require.NoError(t, err)

	_, err = svc.Move(ctx, created.ID, domain.MoveTaskRequest{Status: "done"})
	require.NoError(t, err)
	notifier.queued = nil

	_, err = svc.Move(ctx, created.ID, domain.MoveTaskRequest{Status: "done"})
	require.NoError(t, err)
	assert.Empty(t, notifier.queued)
}

func TestDelete_AllowsCreator(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", domain.CreateTaskRequest{Title: "Temp", Priority: "low"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, "user-1", false))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDelete_RefusesNonCreator(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", domain.CreateTaskRequest{Title: "Temp", Priority: "low"})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID, "user-2", false)
	assert.ErrorIs(t, err, domain.ErrNotTaskCreator)
}

func TestDelete_AllowsSuperAdminOverride(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", domain.CreateTaskRequest{Title: "Temp", Priority: "low"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, "admin-1", true))
}

func TestUpdate_KeepsStatus(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", domain.CreateTaskRequest{Title: "Draft", Priority: "low"})
	require.NoError(t, err)

	_, err = svc.Move(ctx, created.ID, domain.MoveTaskRequest{Status: "in_progress"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, domain.UpdateTaskRequest{Title: "Draft v2", Priority: "high"})
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", updated.Title)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
}
