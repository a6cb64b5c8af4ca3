// Package routes wires controllers onto gin route groups, one setup
// function per deployable.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusgrid/campusgrid/internal/app/controllers"
	"github.com/campusgrid/campusgrid/internal/middleware"
)

// SetupAuthRoutes configures the auth service routes.
func SetupAuthRoutes(
	router *gin.Engine,
	authController *controllers.AuthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// Revocation needs a live access token to know whose sessions to drop.
	authenticated := v1.Group("/auth")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/logout-all", authController.LogoutAll)
	}
}
