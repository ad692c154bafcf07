package router

import (
	"luminafi/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo) {
	authHandler := handler.GetAuthHandler()

	e.POST("/v1/auth/session", authHandler.CreateSession)

	// Identity provider callback; the client lands here after the
	// sign-in-with-redirect flow.
	e.GET("/redirect", authHandler.Redirect)
}
