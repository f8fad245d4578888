package response

import (
	"errors"
	"net/http"

	"github.com/taskora/taskora-backend-go/internal/domain/attendance"
	"github.com/taskora/taskora-backend-go/internal/domain/auth"
	"github.com/taskora/taskora-backend-go/internal/domain/file"
	"github.com/taskora/taskora-backend-go/internal/domain/notification"
	"github.com/taskora/taskora-backend-go/internal/domain/task"
	"github.com/taskora/taskora-backend-go/internal/domain/user"
	"github.com/taskora/taskora-backend-go/internal/domain/whiteboard"
	"github.com/taskora/taskora-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrWrongPassword):
		Unauthorized(w, "Current password is incorrect")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrProfileNotFound):
		NotFound(w, "Profile not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrSuperAdminExists):
		Conflict(w, "A super admin account already exists")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrSuperAdminRequired):
		Forbidden(w, "Super admin access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrCannotDeleteSelf):
		Conflict(w, "Cannot delete your own account")
	case errors.Is(err, user.ErrCannotDeleteSuperAdmin):
		Conflict(w, "Cannot delete a super admin account")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open check-in for today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrNotTaskCreator):
		Forbidden(w, "Only the task creator can delete this task")
	case errors.Is(err, task.ErrInvalidStatus), errors.Is(err, task.ErrInvalidPriority):
		BadRequest(w, err.Error(), nil)

	// File domain errors
	case errors.Is(err, file.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, file.ErrNotFileOwner):
		Forbidden(w, "Only the file owner can delete this file")
	case errors.Is(err, file.ErrFileTooLarge):
		PayloadTooLarge(w, "File exceeds the maximum allowed size")
	case errors.Is(err, file.ErrEmptyUpload):
		BadRequest(w, "Uploaded file is empty", nil)
	case errors.Is(err, file.ErrInvalidSignature):
		Unauthorized(w, "Download link is invalid or expired")

	// Whiteboard domain errors
	case errors.Is(err, whiteboard.ErrWhiteboardNotFound):
		NotFound(w, "Whiteboard not found")
	case errors.Is(err, whiteboard.ErrNotWhiteboardOwner):
		Forbidden(w, "Only the whiteboard owner can modify this document")
	case errors.Is(err, whiteboard.ErrSnapshotTooLarge):
		PayloadTooLarge(w, "Snapshot exceeds the maximum allowed size")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotRecipient):
		Forbidden(w, "Notification belongs to another user")
	case errors.Is(err, notification.ErrQueueFull):
		InternalServerError(w, "Notification queue is full")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
