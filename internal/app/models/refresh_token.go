package models

import (
	"time"
)

// RefreshToken defines the refresh token model based on the 'refresh_tokens'
// table. The opaque token value is the primary key; exactly one row exists per
// issued token. A token leaves the table when it is rotated or revoked, and is
// treated as expired once ExpiresAt has passed (checked at use time, no sweep).
type RefreshToken struct {
	Token     string    `json:"token" db:"token"`
	UserID    int64     `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
