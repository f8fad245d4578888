package notification

import "time"

// Category represents the kind of event a notification describes
type Category string

const (
	CategoryAttendanceCheckIn Category = "attendance_check_in"
	CategoryTaskCreated       Category = "task_created"
	CategoryTaskDone          Category = "task_done"
	CategoryStaffJoined       Category = "staff_joined"
	CategorySystem            Category = "system"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	Category    Category
	Title       string
	Description string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
