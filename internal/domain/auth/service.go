package auth

import (
	"context"
)

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Me(ctx context.Context, userID string) (SessionResponse, error)
	UpdatePassword(ctx context.Context, userID string, req UpdatePasswordRequest) error
	BootstrapStatus(ctx context.Context) (BootstrapStatusResponse, error)
}
