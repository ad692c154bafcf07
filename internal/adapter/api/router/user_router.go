package router

import (
	"luminafi/internal/adapter/api/handler"
	"luminafi/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupUserRouter mounts the document-model CRUD surface. Paths follow the
// original /api/user contract; unsupported methods get echo's 405 with an
// Allow header.
func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/api/user")

	users.GET("", userHandler.ListUsers)
	users.POST("", userHandler.CreateUser)
	users.PATCH("", userHandler.AttachDocuments)
	users.GET("/:id", userHandler.GetUser)
	users.DELETE("/:id", userHandler.DeleteUser, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	users.PUT("/:id/status", userHandler.SetLenderStatus, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
}
