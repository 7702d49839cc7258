package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/andina-hr/timeclock-backend-go/internal/domain/auth"
	"github.com/andina-hr/timeclock-backend-go/internal/domain/user"
	"github.com/andina-hr/timeclock-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
	logger     *slog.Logger
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service, logger *slog.Logger) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.logger.Info("user logged in", slog.String("user_id", u.ID))
	return resp, nil
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	userID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidToken
		}
		return auth.LoginResponse{}, err
	}

	return s.issueTokens(u)
}

func (s *AuthServiceImpl) issueTokens(u user.User) (auth.LoginResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	refreshToken, _, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	return auth.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		Role:         string(u.Role),
	}, nil
}
