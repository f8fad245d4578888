package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskora/taskora-backend-go/internal/domain/notification"
	"github.com/taskora/taskora-backend-go/internal/domain/user"
	"github.com/taskora/taskora-backend-go/internal/pkg/database"
	"github.com/taskora/taskora-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
	user.ProfileRepository
	user.RoleRepository
	postgresql.JWTRepository
	notifications notification.Service
}

func NewUserService(
	db *database.DB,
	userRepository user.UserRepository,
	profileRepository user.ProfileRepository,
	roleRepository user.RoleRepository,
	jwtRepository postgresql.JWTRepository,
	notificationService notification.Service,
) user.UserService {
	return &UserServiceImpl{
		db:                db,
		UserRepository:    userRepository,
		ProfileRepository: profileRepository,
		RoleRepository:    roleRepository,
		JWTRepository:     jwtRepository,
		notifications:     notificationService,
	}
}

// ListStaff implements user.UserService.
func (s *UserServiceImpl) ListStaff(ctx context.Context) ([]user.ProfileResponse, error) {
	profiles, err := s.ProfileRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	responses := make([]user.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, p.ToResponse())
	}
	return responses, nil
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (user.ProfileResponse, error) {
	profile, err := s.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return profile.ToResponse(), nil
}

// UpdateProfile implements user.UserService.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.ProfileResponse, error) {
	profile, err := s.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}

	profile.FullName = req.FullName
	profile.CompanyName = req.CompanyName
	profile.ManagerID = req.ManagerID

	if err := s.ProfileRepository.Update(ctx, profile); err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	updated, err := s.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return updated.ToResponse(), nil
}

// resolveRole loads the stored role; a missing assignment is least
// privilege, never an error.
func (s *UserServiceImpl) resolveRole(ctx context.Context, userID string) user.Role {
	role, err := s.RoleRepository.GetByUserID(ctx, userID)
	if err != nil {
		return user.RoleStaff
	}
	return role
}

// Navigation implements user.UserService.
func (s *UserServiceImpl) Navigation(ctx context.Context, userID string) (user.NavigationResponse, error) {
	role := s.resolveRole(ctx, userID)
	return user.NavigationResponse{
		Landing: user.LandingRoute(role),
		Entries: user.Navigation(role),
	}, nil
}

// ResolveRoute implements user.UserService. A denied route always resolves
// to the caller's own landing route.
func (s *UserServiceImpl) ResolveRoute(ctx context.Context, userID string, path string) (user.RouteResolutionResponse, error) {
	role := s.resolveRole(ctx, userID)

	resolution := user.RouteResolutionResponse{
		Path:    path,
		Allowed: user.CanVisit(role, path),
	}
	if !resolution.Allowed {
		resolution.RedirectTo = user.LandingRoute(role)
	}
	return resolution, nil
}

// requireSuperAdmin re-reads the caller's role from the store. Admin
// operations never trust the token claim alone: a stale token stops working
// the moment the stored assignment changes.
func (s *UserServiceImpl) requireSuperAdmin(ctx context.Context, callerID string) error {
	role, err := s.RoleRepository.GetByUserID(ctx, callerID)
	if err != nil {
		if errors.Is(err, user.ErrRoleNotFound) {
			return user.ErrSuperAdminRequired
		}
		return fmt.Errorf("failed to get caller role: %w", err)
	}
	if !role.IsSuperAdmin() {
		return user.ErrSuperAdminRequired
	}
	return nil
}

// CreateUser implements user.UserService. Account, profile, and role land in
// one transaction; a failure at any step leaves no partial account behind.
func (s *UserServiceImpl) CreateUser(ctx context.Context, callerID string, req user.CreateUserRequest) (user.ProfileResponse, error) {
	if err := s.requireSuperAdmin(ctx, callerID); err != nil {
		return user.ProfileResponse{}, err
	}

	role, ok := user.ParseRole(req.Role)
	if !ok || role == user.RoleSuperAdmin {
		return user.ProfileResponse{}, user.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.Profile

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		account, err := s.UserRepository.Create(txCtx, req.Email, string(hash))
		if err != nil {
			return err
		}

		created, err = s.ProfileRepository.Create(txCtx, user.Profile{
			UserID:    account.ID,
			FullName:  req.FullName,
			Email:     req.Email,
			ManagerID: req.ManagerID,
			IsActive:  true,
		})
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		if err := s.RoleRepository.Assign(txCtx, account.ID, role); err != nil {
			return err
		}

		created.Role = &role
		return nil
	})
	if err != nil {
		return user.ProfileResponse{}, err
	}

	if s.notifications != nil {
		_ = s.notifications.Queue(ctx, notification.CreateNotificationRequest{
			RecipientID: callerID,
			Category:    notification.CategoryStaffJoined,
			Title:       "Staff member added",
			Description: fmt.Sprintf("%s joined as %s", created.FullName, role),
		})
	}

	return created.ToResponse(), nil
}

// DeleteUser implements user.UserService. Self-deletion and deleting a super
// admin are refused; dependent rows go with the account via cascade.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, callerID string, targetID string) error {
	if err := s.requireSuperAdmin(ctx, callerID); err != nil {
		return err
	}
	if targetID == callerID {
		return user.ErrCannotDeleteSelf
	}

	targetRole, err := s.RoleRepository.GetByUserID(ctx, targetID)
	if err == nil && targetRole.IsSuperAdmin() {
		return user.ErrCannotDeleteSuperAdmin
	}
	if err != nil && !errors.Is(err, user.ErrRoleNotFound) {
		return fmt.Errorf("failed to get target role: %w", err)
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.RevokeAllForUser(txCtx, targetID); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		return s.UserRepository.Delete(txCtx, targetID)
	})
}

// SetUserActive implements user.UserService. Deactivation keeps history but
// takes the profile out of the active headcount.
func (s *UserServiceImpl) SetUserActive(ctx context.Context, callerID string, targetID string, active bool) error {
	if err := s.requireSuperAdmin(ctx, callerID); err != nil {
		return err
	}

	profile, err := s.ProfileRepository.GetByUserID(ctx, targetID)
	if err != nil {
		return err
	}

	profile.IsActive = active
	if err := s.ProfileRepository.Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if !active {
		if err := s.RevokeAllForUser(ctx, targetID); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
	}
	return nil
}
