package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campusgrid.auth",
		TokenAudience:   "campusgrid.api",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(42, "alice", "alice@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, int((15 * time.Minute).Seconds()), expiresIn)
	assert.Equal(t, int((24 * time.Hour).Seconds()), refreshExpiresIn)

	// The refresh token is opaque, not a JWT.
	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)
}

func TestGenerateTokenPair_RefreshTokensUnique(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)

	_, refresh1, _, _, err := svc.GenerateTokenPair(1, "alice", "alice@example.com")
	require.NoError(t, err)
	_, refresh2, _, _, err := svc.GenerateTokenPair(1, "alice", "alice@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, refresh1, refresh2)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)

	access, _, _, _, err := svc.GenerateTokenPair(42, "alice", "alice@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	access, _, _, _, err := svc.GenerateTokenPair(42, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	access, _, _, _, err := svc.GenerateTokenPair(42, "alice", "alice@example.com")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campusgrid.auth",
		TokenAudience:   "campusgrid.api",
	})

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateToken_WrongIssuerOrAudience(t *testing.T) {
	issued := NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "someone-else",
		TokenAudience:   "campusgrid.api",
	})
	access, _, _, _, err := issued.GenerateTokenPair(42, "alice", "alice@example.com")
	require.NoError(t, err)

	svc := newTestJWTService(15 * time.Minute)
	_, err = svc.ValidateToken(access)
	assert.Error(t, err)

	issued = NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campusgrid.auth",
		TokenAudience:   "another-audience",
	})
	access, _, _, _, err = issued.GenerateTokenPair(42, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("abc123")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("bearer abc123")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
