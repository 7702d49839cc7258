package auth

import "context"

// AuthService authenticates API users.
type AuthService interface {
	// Login verifies credentials and issues an access/refresh token pair
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
}
