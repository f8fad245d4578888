package task

import (
	"time"

	"github.com/taskora/taskora-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	} else if !validator.MaxLen(r.Title, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	if r.Priority == "" {
		r.Priority = string(PriorityMedium)
	} else if !IsValidPriority(r.Priority) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high",
		})
	}

	if r.DueDate != nil && *r.DueDate != "" {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due_date must be a date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}

func (r *UpdateTaskRequest) Validate() error {
	cr := CreateTaskRequest{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
	if err := cr.Validate(); err != nil {
		return err
	}
	r.Priority = cr.Priority
	return nil
}

// MoveTaskRequest is the board drag-and-drop: only the status column changes.
type MoveTaskRequest struct {
	Status string `json:"status"`
}

func (r *MoveTaskRequest) Validate() error {
	if !IsValidStatus(r.Status) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of: todo, in_progress, done",
		}}
	}
	return nil
}

type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	DueDate     *string   `json:"due_date,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatorName *string   `json:"creator_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t Task) ToResponse() TaskResponse {
	var due *string
	if t.DueDate != nil {
		s := t.DueDate.Format("2006-01-02")
		due = &s
	}
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     due,
		CreatedBy:   t.CreatedBy,
		CreatorName: t.CreatorName,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
