package handler

import (
	"luminafi/internal/usecase"
	"luminafi/pkg/logger"
	"luminafi/pkg/response"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type createUserRequest struct {
	UserID          string  `json:"userId" validate:"required"`
	UserName        string  `json:"userName" validate:"required,min=3"`
	WalletAddress   string  `json:"walletAddress" validate:"required"`
	FullName        string  `json:"fullName" validate:"required"`
	Role            string  `json:"role" validate:"required,oneof=lender investor admin"`
	Transcript      string  `json:"transcript" validate:"omitempty,url"`
	Essay           string  `json:"essay" validate:"omitempty,url"`
	InstitutionName string  `json:"institutionName"`
	Amount          float64 `json:"amount" validate:"omitempty,gt=0"`
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.CreateUser(c.Request().Context(), usecase.CreateUserInput{
		UserID:          req.UserID,
		UserName:        req.UserName,
		WalletAddress:   req.WalletAddress,
		FullName:        req.FullName,
		Role:            req.Role,
		InstitutionName: req.InstitutionName,
		Amount:          req.Amount,
		TranscriptURL:   req.Transcript,
		EssayURL:        req.Essay,
	})
	if err != nil {
		logger.Error("Create user failed: %v", err)
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"id": user.ID,
	})
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	aggregates, err := h.userUseCase.ListUsers(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, aggregates)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	aggregate, err := h.userUseCase.GetUserAggregate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, aggregate)
}

type attachDocumentsRequest struct {
	UserID     string `json:"userId" validate:"required"`
	Transcript string `json:"transcript" validate:"omitempty,url"`
	Essay      string `json:"essay" validate:"omitempty,url"`
}

// AttachDocuments links uploaded file URLs to the user's lender document;
// the upload itself happens through the file handler first.
func (h *UserHandler) AttachDocuments(c echo.Context) error {
	var req attachDocumentsRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	lender, err := h.userUseCase.AttachDocuments(c.Request().Context(), req.UserID, req.Transcript, req.Essay)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, lender)
}

type lenderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

func (h *UserHandler) SetLenderStatus(c echo.Context) error {
	var req lenderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	lender, err := h.userUseCase.SetLenderStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, lender)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.userUseCase.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"deleted": true,
	})
}
