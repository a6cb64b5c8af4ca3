package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/pkg/auth"
)

const identityKey = "identity"

// Identity is the authenticated caller, materialized once per request.
type Identity struct {
	UserID   int64
	Username string
	Email    string
}

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the Authorization header and stores the caller identity
// in the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(identityKey, Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
		})

		c.Next()
	}
}

// GatewayAuth trusts identity headers stamped by an upstream gateway that has
// already validated the token. Intended for service deployments that never
// face the public network directly.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader("X-UserId")
		if rawID == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Identity headers missing")
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Malformed identity headers")
			return
		}

		c.Set(identityKey, Identity{
			UserID:   userID,
			Username: c.GetHeader("X-UserName"),
			Email:    c.GetHeader("X-Email"),
		})

		c.Next()
	}
}

// IdentityFromContext returns the caller identity set by JWTAuth or
// GatewayAuth.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
