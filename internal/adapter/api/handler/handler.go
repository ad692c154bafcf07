package handler

import (
	"luminafi/internal/usecase"
)

var (
	authHandler     *AuthHandler
	userHandler     *UserHandler
	loanHandler     *LoanHandler
	investorHandler *InvestorHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	loanUseCase *usecase.LoanUseCase,
	investorUseCase *usecase.InvestorUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	loanHandler = NewLoanHandler(loanUseCase)
	investorHandler = NewInvestorHandler(investorUseCase)
}

func GetAuthHandler() *AuthHandler         { return authHandler }
func GetUserHandler() *UserHandler         { return userHandler }
func GetLoanHandler() *LoanHandler         { return loanHandler }
func GetInvestorHandler() *InvestorHandler { return investorHandler }
