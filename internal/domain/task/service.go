package task

import "context"

type TaskService interface {
	Create(ctx context.Context, creatorID string, req CreateTaskRequest) (TaskResponse, error)
	Get(ctx context.Context, id string) (TaskResponse, error)
	List(ctx context.Context) ([]TaskResponse, error)
	Update(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error)
	Move(ctx context.Context, id string, req MoveTaskRequest) (TaskResponse, error)
	Delete(ctx context.Context, id string, callerID string, callerIsSuperAdmin bool) error
}
