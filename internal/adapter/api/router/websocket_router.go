package router

import (
	"luminafi/internal/adapter/api/handler"
	"luminafi/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/v1/ws", wsHandler.Connect, authMiddleware.Authenticate)
}
