package task

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrNotTaskCreator  = errors.New("only the task creator can delete this task")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)
