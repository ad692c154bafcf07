package router

import (
	"luminafi/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, gateMiddleware *middleware.GateMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	SetupAuthRouter(e)
	SetupUserRouter(e, authMiddleware, adminMiddleware)
	SetupLoanRouter(e, authMiddleware, gateMiddleware, adminMiddleware, rateLimit)
	SetupInvestorRouter(e, authMiddleware, gateMiddleware, rateLimit)
	SetupHealthRouter(e)
}
