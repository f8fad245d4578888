package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taskora/taskora-backend-go/internal/domain/auth"
	"github.com/taskora/taskora-backend-go/internal/domain/user"
	"github.com/taskora/taskora-backend-go/internal/pkg/database"
	"github.com/taskora/taskora-backend-go/internal/pkg/jwt"
	"github.com/taskora/taskora-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	user.ProfileRepository
	user.RoleRepository
	jwt.Service
	postgresql.JWTRepository
}

func NewAuthService(
	db *database.DB,
	userRepository user.UserRepository,
	profileRepository user.ProfileRepository,
	roleRepository user.RoleRepository,
	jwtService jwt.Service,
	jwtRepository postgresql.JWTRepository,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                db,
		UserRepository:    userRepository,
		ProfileRepository: profileRepository,
		RoleRepository:    roleRepository,
		Service:           jwtService,
		JWTRepository:     jwtRepository,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Signup implements auth.AuthService. Public sign-up only bootstraps the
// workspace: exactly one account can ever be created through here, and it
// gets the super_admin role. The SuperAdminExists check is advisory; the
// partial unique index behind RoleRepository.Assign decides races.
func (a *AuthServiceImpl) Signup(ctx context.Context, req auth.SignupRequest) (auth.TokenResponse, error) {
	exists, err := a.RoleRepository.SuperAdminExists(ctx)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check super admin existence: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, user.ErrSuperAdminExists
	}

	passwordHash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var tokenResponse auth.TokenResponse

	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		userData, err := a.UserRepository.Create(txCtx, req.Email, passwordHash)
		if err != nil {
			return err
		}

		companyName := req.CompanyName
		_, err = a.ProfileRepository.Create(txCtx, user.Profile{
			UserID:      userData.ID,
			FullName:    req.FullName,
			Email:       req.Email,
			CompanyName: &companyName,
			IsActive:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		if err := a.RoleRepository.Assign(txCtx, userData.ID, user.RoleSuperAdmin); err != nil {
			return err
		}

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, user.RoleSuperAdmin)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) || errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	role := a.resolveRole(ctx, userData.ID)

	var tokenResponse auth.TokenResponse

	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// resolveRole fetches the role assignment; a missing or unreadable
// assignment degrades to staff, never to an error.
func (a *AuthServiceImpl) resolveRole(ctx context.Context, userID string) user.Role {
	role, err := a.RoleRepository.GetByUserID(ctx, userID)
	if err != nil {
		return user.RoleStaff
	}
	return role
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	a.Service.RevokeToken(refreshToken)
	if err := a.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if req.RefreshToken == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if a.Service.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := a.Service.JWTAuth().Decode(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	role := a.resolveRole(ctx, userData.ID)

	accessToken, expiresIn, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresIn,
	}, nil
}

// Me implements auth.AuthService. This is the session-restoration read: the
// frontend hydrates role, landing route, and profile from one call.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (auth.SessionResponse, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionResponse{}, auth.ErrUserNotFound
		}
		return auth.SessionResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	profile, err := a.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrProfileNotFound) {
		return auth.SessionResponse{}, fmt.Errorf("failed to get profile: %w", err)
	}

	// Role is resolved independently of the token so a revoked or changed
	// assignment takes effect on the next session restore.
	var rolePtr *user.Role
	role := user.RoleStaff
	if assigned, roleErr := a.RoleRepository.GetByUserID(ctx, userID); roleErr == nil {
		role = assigned
		rolePtr = &assigned
	}

	return auth.SessionResponse{
		UserID:  userData.ID,
		Email:   userData.Email,
		Role:    rolePtr,
		Landing: user.LandingRoute(role),
		Profile: profile.ToResponse(),
	}, nil
}

// UpdatePassword implements auth.AuthService.
func (a *AuthServiceImpl) UpdatePassword(ctx context.Context, userID string, req auth.UpdatePasswordRequest) error {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongPassword
	}

	passwordHash, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		if err := a.UserRepository.UpdatePassword(txCtx, userID, passwordHash); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		// Password change invalidates every other live session.
		if err := a.RevokeAllForUser(txCtx, userID); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		return nil
	})
}

// BootstrapStatus implements auth.AuthService.
func (a *AuthServiceImpl) BootstrapStatus(ctx context.Context) (auth.BootstrapStatusResponse, error) {
	exists, err := a.RoleRepository.SuperAdminExists(ctx)
	if err != nil {
		return auth.BootstrapStatusResponse{}, fmt.Errorf("failed to check super admin existence: %w", err)
	}
	return auth.BootstrapStatusResponse{SuperAdminExists: exists}, nil
}
