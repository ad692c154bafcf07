package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"luminafi/internal/domain/entity"
	"luminafi/internal/usecase"
)

const sessionContextKey = "session"

// AuthMiddleware resolves the wallet/identity session for a request. The
// identity half is the provider's bearer token, the wallet half the
// X-Wallet-Address header the client reports as connected.
type AuthMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		// A bearer token is either a session token minted by
		// POST /v1/auth/session or the provider's ID token. Session
		// tokens are checked first so repeat requests skip provider
		// verification.
		session, err := m.authUseCase.ParseSessionToken(parts[1])
		if err != nil {
			session, err = m.authUseCase.ResolveSession(
				c.Request().Context(),
				parts[1],
				c.Request().Header.Get("X-Wallet-Address"),
			)
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set(sessionContextKey, session)
		return next(c)
	}
}

// SessionFromContext returns the session stored by Authenticate, or nil.
func SessionFromContext(c echo.Context) *entity.Session {
	session, _ := c.Get(sessionContextKey).(*entity.Session)
	return session
}
