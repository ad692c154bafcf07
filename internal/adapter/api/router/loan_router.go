package router

import (
	"luminafi/internal/adapter/api/handler"
	"luminafi/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupLoanRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, gateMiddleware *middleware.GateMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	loanHandler := handler.GetLoanHandler()

	loans := e.Group("/v1/loans")
	loans.Use(authMiddleware.Authenticate)
	loans.Use(gateMiddleware.Authorize)

	loans.GET("", loanHandler.ListLoans)
	loans.GET("/:id", loanHandler.GetLoan)
	loans.POST("", loanHandler.RequestLoan, rateLimit.Limit("submit_tx"))
	loans.POST("/:id/votes", loanHandler.Vote, rateLimit.Limit("submit_tx"))
	loans.POST("/:id/payments", loanHandler.MakePayment, rateLimit.Limit("submit_tx"))
	loans.POST("/:id/default", loanHandler.DefaultLoan, adminMiddleware.AdminOnly)

	borrowers := e.Group("/v1/borrowers")
	borrowers.Use(authMiddleware.Authenticate)
	borrowers.POST("", loanHandler.RegisterBorrower, rateLimit.Limit("submit_tx"))

	profile := e.Group("/v1/profile")
	profile.Use(authMiddleware.Authenticate)
	profile.Use(gateMiddleware.Authorize)
	profile.GET("", loanHandler.GetProfile)

	credentials := e.Group("/v1/credentials")
	credentials.Use(authMiddleware.Authenticate)
	credentials.POST("", loanHandler.AddCredential, gateMiddleware.Authorize, rateLimit.Limit("submit_tx"))
	credentials.POST("/:index/verify", loanHandler.VerifyCredential, adminMiddleware.AdminOnly)
}
