package handler

import (
	"luminafi/internal/usecase"
	"luminafi/pkg/response"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type createSessionRequest struct {
	IDToken       string `json:"id_token" validate:"required"`
	WalletAddress string `json:"wallet_address"`
}

// CreateSession resolves the identity token + wallet pair into a session and
// mints the session token the client sends on subsequent requests.
func (h *AuthHandler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.authUseCase.ResolveSession(c.Request().Context(), req.IDToken, req.WalletAddress)
	if err != nil {
		return response.Error(c, err)
	}

	token, err := h.authUseCase.MintSessionToken(session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"session": session,
		"token":   token,
	})
}

// Redirect is the identity provider's sign-in callback screen: it reports
// success or failure and where to navigate next.
func (h *AuthHandler) Redirect(c echo.Context) error {
	result := h.authUseCase.CompleteRedirect(
		c.Request().Context(),
		c.QueryParam("id_token"),
		c.QueryParam("error"),
	)
	return response.Success(c, result)
}
