package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"luminafi/internal/domain/entity"
	"luminafi/internal/domain/repository"
)

// AdminMiddleware gates the credential-verification and lender-status routes
// behind the admin role on the user document.
type AdminMiddleware struct {
	userRepo repository.UserRepository
}

func NewAdminMiddleware(userRepo repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{
		userRepo: userRepo,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := SessionFromContext(c)
		if session == nil || session.WalletAddress == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByWalletAddress(c.Request().Context(), session.WalletAddress)
		if err != nil || user == nil {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		if user.Role != entity.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}

		return next(c)
	}
}
