package handler

import (
	"strconv"

	"luminafi/internal/adapter/api/middleware"
	"luminafi/internal/domain/entity"
	"luminafi/internal/infrastructure/chain"
	"luminafi/internal/usecase"
	"luminafi/pkg/errors"
	"luminafi/pkg/response"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct {
	loanUseCase *usecase.LoanUseCase
}

// loanSummaryView adds the human-unit renderings of the base-unit amounts
// carried by the contract view.
type loanSummaryView struct {
	entity.LoanSummary
	AmountDisplay string `json:"amount_display"`
	PaidDisplay   string `json:"paid_display"`
}

func presentLoan(summary entity.LoanSummary) loanSummaryView {
	return loanSummaryView{
		LoanSummary:   summary,
		AmountDisplay: chain.FormatStableAmount(summary.AmountStablecoin),
		PaidDisplay:   chain.FormatStableAmount(summary.PaidAmount),
	}
}

func NewLoanHandler(loanUseCase *usecase.LoanUseCase) *LoanHandler {
	return &LoanHandler{
		loanUseCase: loanUseCase,
	}
}

type registerBorrowerRequest struct {
	Name        string `json:"name" validate:"required"`
	Institution string `json:"institution" validate:"required"`
}

func (h *LoanHandler) RegisterBorrower(c echo.Context) error {
	var req registerBorrowerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.SessionFromContext(c)
	outcome := h.loanUseCase.RegisterBorrower(c.Request().Context(), session, req.Name, req.Institution)
	return response.Success(c, outcome)
}

type requestLoanRequest struct {
	Amount        string  `json:"amount" validate:"required"`
	TermYears     int     `json:"termYears" validate:"required,min=1,max=10"`
	ProfitShare   float64 `json:"profitShare" validate:"min=0,max=100"`
	Reason        string  `json:"reason" validate:"required"`
	DocumentsHash string  `json:"documentsHash"`
}

// RequestLoan is the apply screen: amount in human stable-coin units, term
// in years, profit share as the 0-100 slider value.
func (h *LoanHandler) RequestLoan(c echo.Context) error {
	var req requestLoanRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.SessionFromContext(c)
	outcome, err := h.loanUseCase.RequestLoan(c.Request().Context(), session, usecase.RequestLoanInput{
		Amount:        req.Amount,
		TermYears:     req.TermYears,
		ProfitShare:   req.ProfitShare,
		Reason:        req.Reason,
		DocumentsHash: req.DocumentsHash,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, outcome)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	statusName := c.QueryParam("status")
	if statusName == "" {
		statusName = "Pending"
	}
	status, ok := entity.ParseLoanStatus(statusName)
	if !ok {
		return response.Error(c, errors.BadRequest("Unknown loan status", nil))
	}

	loans, err := h.loanUseCase.ListLoansByStatus(c.Request().Context(), status)
	if err != nil {
		return response.Error(c, err)
	}

	views := make([]loanSummaryView, 0, len(loans))
	for _, loan := range loans {
		views = append(views, presentLoan(loan))
	}
	return response.Success(c, views)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid loan id", err))
	}

	loan, err := h.loanUseCase.GetLoan(c.Request().Context(), loanID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, presentLoan(*loan))
}

func (h *LoanHandler) Vote(c echo.Context) error {
	loanID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid loan id", err))
	}

	session := middleware.SessionFromContext(c)
	outcome := h.loanUseCase.Vote(c.Request().Context(), session, loanID)
	return response.Success(c, outcome)
}

type paymentRequest struct {
	Amount string `json:"amount" validate:"required"`
}

func (h *LoanHandler) MakePayment(c echo.Context) error {
	loanID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid loan id", err))
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.SessionFromContext(c)
	outcome := h.loanUseCase.MakePayment(c.Request().Context(), session, loanID, req.Amount)
	return response.Success(c, outcome)
}

func (h *LoanHandler) DefaultLoan(c echo.Context) error {
	loanID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid loan id", err))
	}

	outcome := h.loanUseCase.DefaultLoan(c.Request().Context(), loanID)
	return response.Success(c, outcome)
}

type addCredentialRequest struct {
	Hash string `json:"hash" validate:"required"`
}

func (h *LoanHandler) AddCredential(c echo.Context) error {
	var req addCredentialRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session := middleware.SessionFromContext(c)
	outcome := h.loanUseCase.AddCredential(c.Request().Context(), session, req.Hash)
	return response.Success(c, outcome)
}

type verifyCredentialRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required"`
}

func (h *LoanHandler) VerifyCredential(c echo.Context) error {
	index, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid credential index", err))
	}

	var req verifyCredentialRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	outcome := h.loanUseCase.VerifyCredential(c.Request().Context(), req.WalletAddress, index)
	return response.Success(c, outcome)
}

// GetProfile returns the caller's on-chain profile, fetched fresh per
// request; nothing is cached.
func (h *LoanHandler) GetProfile(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	profile, err := h.loanUseCase.GetProfile(c.Request().Context(), session.WalletAddress)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}
