package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
	"github.com/campusgrid/campusgrid/internal/pkg/auth"
)

type fakeUserStore struct {
	nextID int64
	byName map[string]*models.User
	byID   map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		nextID: 1,
		byName: make(map[string]*models.User),
		byID:   make(map[int64]*models.User),
	}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if _, ok := s.byName[user.Username]; ok {
		return apperrors.ErrUserExists
	}
	user.ID = s.nextID
	s.nextID++
	s.byName[user.Username] = user
	s.byID[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := s.byName[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	if _, ok := s.byName[username]; ok {
		return true, nil
	}
	for _, u := range s.byName {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeTokenStore struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken)}
}

func (s *fakeTokenStore) Create(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	s.tokens[token] = &models.RefreshToken{Token: token, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (s *fakeTokenStore) GetByValue(_ context.Context, token string) (*models.RefreshToken, error) {
	stored, ok := s.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	if stored.Expired(time.Now()) {
		delete(s.tokens, token)
		return nil, apperrors.ErrTokenExpired
	}
	return stored, nil
}

func (s *fakeTokenStore) Rotate(_ context.Context, oldToken, newToken string, expiresAt time.Time) (int64, error) {
	stored, ok := s.tokens[oldToken]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	delete(s.tokens, oldToken)
	s.tokens[newToken] = &models.RefreshToken{Token: newToken, UserID: stored.UserID, ExpiresAt: expiresAt}
	return stored.UserID, nil
}

func (s *fakeTokenStore) DeleteAllForUser(_ context.Context, userID int64) (int64, error) {
	var deleted int64
	for token, stored := range s.tokens {
		if stored.UserID == userID {
			delete(s.tokens, token)
			deleted++
		}
	}
	return deleted, nil
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campusgrid.auth",
		TokenAudience:   "campusgrid.api",
	})
	return NewAuthService(users, tokens, jwtService, zerolog.Nop()), users, tokens
}

func registerTestUser(t *testing.T, svc *AuthService) *dto.TokenResponse {
	t.Helper()
	tokens, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		FullName: "Alice Example",
	})
	require.NoError(t, err)
	return tokens
}

func TestRegister_IssuesTokenPair(t *testing.T) {
	svc, _, tokenStore := newTestAuthService()

	tokens := registerTestUser(t, svc)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Greater(t, tokens.ExpiresIn, int64(0))

	_, ok := tokenStore.tokens[tokens.RefreshToken]
	assert.True(t, ok, "refresh token should be persisted")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserExists)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserExists)
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestLogin_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	_, errWrongPass := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	_, errNoUser := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "mallory",
		Password: "whatever",
	})

	assert.ErrorIs(t, errWrongPass, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, apperrors.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	initial := registerTestUser(t, svc)

	rotated, err := svc.Refresh(context.Background(), initial.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, initial.RefreshToken, rotated.RefreshToken)

	// The old token died the moment the rotation succeeded.
	_, err = svc.Refresh(context.Background(), initial.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	// The new one works.
	_, err = svc.Refresh(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	svc, _, tokenStore := newTestAuthService()
	tokens := registerTestUser(t, svc)

	tokenStore.tokens[tokens.RefreshToken].ExpiresAt = time.Now().Add(-time.Hour)

	_, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	svc, _, _ := newTestAuthService()
	first := registerTestUser(t, svc)

	second, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "alice",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	revoked, err := svc.LogoutAll(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	_, err = svc.Refresh(context.Background(), second.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogoutAll_Idempotent(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc)

	revoked, err := svc.LogoutAll(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = svc.LogoutAll(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, revoked)
}
