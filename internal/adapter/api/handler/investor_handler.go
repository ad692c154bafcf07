package handler

import (
	"luminafi/internal/adapter/api/middleware"
	"luminafi/internal/usecase"
	"luminafi/pkg/response"

	"github.com/labstack/echo/v4"
)

type InvestorHandler struct {
	investorUseCase *usecase.InvestorUseCase
}

func NewInvestorHandler(investorUseCase *usecase.InvestorUseCase) *InvestorHandler {
	return &InvestorHandler{
		investorUseCase: investorUseCase,
	}
}

type registerInvestorRequest struct {
	Name        string `json:"name" validate:"required"`
	Institution string `json:"institution" validate:"required"`
}

func (h *InvestorHandler) RegisterInvestor(c echo.Context) error {
	var req registerInvestorRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.SessionFromContext(c)
	outcome := h.investorUseCase.RegisterInvestor(c.Request().Context(), session, req.Name, req.Institution)
	return response.Success(c, outcome)
}

type amountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

func (h *InvestorHandler) Invest(c echo.Context) error {
	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.SessionFromContext(c)
	outcome := h.investorUseCase.Invest(c.Request().Context(), session, req.Amount)
	return response.Success(c, outcome)
}

func (h *InvestorHandler) Withdraw(c echo.Context) error {
	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.SessionFromContext(c)
	outcome := h.investorUseCase.Withdraw(c.Request().Context(), session, req.Amount)
	return response.Success(c, outcome)
}

// ApproveSpend approves the lending contract to move the caller's investment
// tokens before an invest call.
func (h *InvestorHandler) ApproveSpend(c echo.Context) error {
	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	outcome := h.investorUseCase.ApproveSpend(c.Request().Context(), req.Amount)
	return response.Success(c, outcome)
}

func (h *InvestorHandler) GetDashboard(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	dashboard, err := h.investorUseCase.GetDashboard(c.Request().Context(), session.WalletAddress)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, dashboard)
}

func (h *InvestorHandler) GetPool(c echo.Context) error {
	pool, err := h.investorUseCase.GetPool(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, pool)
}
