package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserEmailExists          = errors.New("email already registered")
	ErrProfileNotFound          = errors.New("profile not found")
	ErrRoleNotFound             = errors.New("role assignment not found")
	ErrInvalidRole              = errors.New("invalid role")
	ErrSuperAdminExists         = errors.New("a super admin account already exists")
	ErrSuperAdminRequired       = errors.New("super admin access required")
	ErrManagerAccessRequired    = errors.New("manager access required")
	ErrCannotDeleteSelf         = errors.New("cannot delete your own account")
	ErrCannotDeleteSuperAdmin   = errors.New("cannot delete another super admin")
	ErrInsufficientPermissions  = errors.New("insufficient permissions")
	ErrUpdatedAtBeforeCreatedAt = errors.New("updated_at cannot be before created_at")
)
