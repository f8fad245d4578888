package task

import (
	"context"
	"fmt"
	"time"

	"github.com/taskora/taskora-backend-go/internal/domain/notification"
	"github.com/taskora/taskora-backend-go/internal/domain/task"
)

type TaskServiceImpl struct {
	task.TaskRepository
	notifications notification.Service
}

func NewTaskService(taskRepository task.TaskRepository, notificationService notification.Service) task.TaskService {
	return &TaskServiceImpl{
		TaskRepository: taskRepository,
		notifications:  notificationService,
	}
}

func parseDueDate(due *string) *time.Time {
	if due == nil || *due == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", *due)
	if err != nil {
		return nil
	}
	return &parsed
}

// Create implements task.TaskService. New tasks always start in the todo
// column regardless of what the client sends.
func (s *TaskServiceImpl) Create(ctx context.Context, creatorID string, req task.CreateTaskRequest) (task.TaskResponse, error) {
	created, err := s.TaskRepository.Create(ctx, task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusTodo,
		Priority:    task.Priority(req.Priority),
		DueDate:     parseDueDate(req.DueDate),
		CreatedBy:   creatorID,
	})
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	if s.notifications != nil {
		_ = s.notifications.Queue(ctx, notification.CreateNotificationRequest{
			RecipientID: creatorID,
			Category:    notification.CategoryTaskCreated,
			Title:       "Task created",
			Description: created.Title,
		})
	}

	return created.ToResponse(), nil
}

// Get implements task.TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, id string) (task.TaskResponse, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return t.ToResponse(), nil
}

// List implements task.TaskService.
func (s *TaskServiceImpl) List(ctx context.Context) ([]task.TaskResponse, error) {
	tasks, err := s.TaskRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, t.ToResponse())
	}
	return responses, nil
}

// Update implements task.TaskService. Status is not touched here; the board
// moves columns through Move.
func (s *TaskServiceImpl) Update(ctx context.Context, id string, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Priority = task.Priority(req.Priority)
	existing.DueDate = parseDueDate(req.DueDate)

	if err := s.TaskRepository.Update(ctx, existing); err != nil {
		return task.TaskResponse{}, err
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return updated.ToResponse(), nil
}

// Move implements task.TaskService. The response carries the stored row so
// an optimistic client can reconcile against what actually persisted.
func (s *TaskServiceImpl) Move(ctx context.Context, id string, req task.MoveTaskRequest) (task.TaskResponse, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}

	newStatus := task.Status(req.Status)
	if err := s.UpdateStatus(ctx, id, newStatus); err != nil {
		return task.TaskResponse{}, err
	}

	if s.notifications != nil && newStatus == task.StatusDone && existing.Status != task.StatusDone {
		_ = s.notifications.Queue(ctx, notification.CreateNotificationRequest{
			RecipientID: existing.CreatedBy,
			Category:    notification.CategoryTaskDone,
			Title:       "Task completed",
			Description: existing.Title,
		})
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return updated.ToResponse(), nil
}

// Delete implements task.TaskService. Only the creator or a super admin may
// delete a task.
func (s *TaskServiceImpl) Delete(ctx context.Context, id string, callerID string, callerIsSuperAdmin bool) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.CreatedBy != callerID && !callerIsSuperAdmin {
		return task.ErrNotTaskCreator
	}

	return s.TaskRepository.Delete(ctx, id)
}
