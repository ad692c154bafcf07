package router

import (
	"luminafi/internal/adapter/api/handler"
	"luminafi/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupInvestorRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, gateMiddleware *middleware.GateMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	investorHandler := handler.GetInvestorHandler()

	investors := e.Group("/v1/investors")
	investors.Use(authMiddleware.Authenticate)
	investors.POST("", investorHandler.RegisterInvestor, rateLimit.Limit("submit_tx"))

	dashboard := e.Group("/v1/dashboard/investor")
	dashboard.Use(authMiddleware.Authenticate)
	dashboard.Use(gateMiddleware.Authorize)
	dashboard.GET("", investorHandler.GetDashboard)

	gated := e.Group("/v1")
	gated.Use(authMiddleware.Authenticate)
	gated.Use(gateMiddleware.Authorize)

	gated.GET("/pool", investorHandler.GetPool)
	gated.POST("/investments", investorHandler.Invest, rateLimit.Limit("submit_tx"))
	gated.POST("/withdrawals", investorHandler.Withdraw, rateLimit.Limit("submit_tx"))
	gated.POST("/approvals", investorHandler.ApproveSpend, rateLimit.Limit("submit_tx"))
}
