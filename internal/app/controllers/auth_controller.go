package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/app/services"
	"github.com/campusgrid/campusgrid/internal/middleware"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	tokens, err := ctrl.authService.Register(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(tokens, "User registered successfully"))
}

// Login handles POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	tokens, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(tokens, "Login successful"))
}

// Refresh handles POST /api/v1/auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	tokens, err := ctrl.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(tokens, "Token refreshed"))
}

// LogoutAll handles POST /api/v1/auth/logout-all. Requires a valid access
// token; revokes every refresh token of the caller.
func (ctrl *AuthController) LogoutAll(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	revoked, err := ctrl.authService.LogoutAll(c.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LogoutAllResponse{Revoked: revoked}, "Logged out from all sessions"))
}
