package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)

	// List returns every task joined with the creator's profile name. The
	// board re-reads this after each mutation; the list is the canonical
	// state optimistic clients reconcile against.
	List(ctx context.Context) ([]Task, error)

	Update(ctx context.Context, t Task) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
