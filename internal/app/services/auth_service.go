package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
	"github.com/campusgrid/campusgrid/internal/pkg/auth"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// TokenStore persists refresh token state.
type TokenStore interface {
	Create(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetByValue(ctx context.Context, token string) (*models.RefreshToken, error)
	Rotate(ctx context.Context, oldToken, newToken string, expiresAt time.Time) (int64, error)
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)
}

// AuthService owns the token lifecycle: registration, login, refresh token
// rotation and revocation.
type AuthService struct {
	users  UserStore
	tokens TokenStore
	jwt    *auth.JWTService
	logger zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens TokenStore, jwt *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
		logger: logger,
	}
}

// Register creates a user and issues the first token pair. Username and email
// collisions (case-insensitive) fail with apperrors.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUserExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Address:      req.Address,
	}

	// The existence pre-check can race; the unique indexes settle it.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUserExists) {
			return nil, apperrors.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("user registered")

	return s.issueTokenPair(ctx, user)
}

// Login verifies credentials and issues a token pair. An unknown username and
// a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, user)
}

// Refresh rotates a refresh token and issues a new token pair. The old token
// is removed before the new one is stored, so it is unusable the moment this
// call succeeds, and a concurrent rotation of the same token fails on the
// missing row.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokens.GetByValue(ctx, refreshToken)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTokenNotFound, apperrors.ErrTokenExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to validate refresh token: %w", err)
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}

	accessToken, newRefreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if _, err := s.tokens.Rotate(ctx, refreshToken, newRefreshToken, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     newRefreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}

// LogoutAll revokes every refresh token the user holds. Idempotent; reports
// whether any token was actually revoked.
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) (bool, error) {
	deleted, err := s.tokens.DeleteAllForUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to revoke tokens: %w", err)
	}

	if deleted > 0 {
		s.logger.Info().Int64("userID", userID).Int64("revoked", deleted).Msg("revoked all refresh tokens")
	}

	return deleted > 0, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokens.Create(ctx, refreshToken, user.ID, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}
