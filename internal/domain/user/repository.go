package user

import "context"

// UserRepository defines data access for auth accounts.
type UserRepository interface {
	Create(ctx context.Context, email string, passwordHash string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error

	// Delete removes the auth account; dependent rows go with it via
	// ON DELETE CASCADE.
	Delete(ctx context.Context, id string) error
}

// ProfileRepository defines data access for directory profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile Profile) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Update(ctx context.Context, profile Profile) error

	// List returns all profiles joined with their role assignment.
	List(ctx context.Context) ([]Profile, error)

	// CountActive returns the number of active profiles, the denominator for
	// the attendance summary.
	CountActive(ctx context.Context) (int, error)
}

// RoleRepository defines data access for role assignments.
type RoleRepository interface {
	Assign(ctx context.Context, userID string, role Role) error
	GetByUserID(ctx context.Context, userID string) (Role, error)

	// SuperAdminExists is the advisory pre-check at sign-up; the partial
	// unique index on user_roles is the authoritative constraint.
	SuperAdminExists(ctx context.Context) (bool, error)
}
