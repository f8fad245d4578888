package user

import "context"

// UserService covers the staff directory, profile settings, the route gate,
// and the admin provisioning operations.
type UserService interface {
	ListStaff(ctx context.Context) ([]ProfileResponse, error)
	GetProfile(ctx context.Context, userID string) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)

	// Navigation and ResolveRoute read the same role table the middleware
	// enforces, so menu, gate, and redirects cannot disagree.
	Navigation(ctx context.Context, userID string) (NavigationResponse, error)
	ResolveRoute(ctx context.Context, userID string, path string) (RouteResolutionResponse, error)

	// Admin operations. Both re-verify the caller's role from the store; the
	// token claim alone is never trusted for these.
	CreateUser(ctx context.Context, callerID string, req CreateUserRequest) (ProfileResponse, error)
	DeleteUser(ctx context.Context, callerID string, targetID string) error
	SetUserActive(ctx context.Context, callerID string, targetID string, active bool) error
}
