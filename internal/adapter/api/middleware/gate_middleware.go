package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"luminafi/internal/usecase"
)

// GateMiddleware applies the session gate to page-level routes: it waits for
// the on-chain profile reads to settle and only lets authenticated,
// wallet-connected visitors through. Everyone else gets a redirect hint to
// the login route.
type GateMiddleware struct {
	gateFactory func() *usecase.SessionGate
	loans       *usecase.LoanUseCase
	investors   *usecase.InvestorUseCase
}

func NewGateMiddleware(gateFactory func() *usecase.SessionGate, loans *usecase.LoanUseCase, investors *usecase.InvestorUseCase) *GateMiddleware {
	return &GateMiddleware{
		gateFactory: gateFactory,
		loans:       loans,
		investors:   investors,
	}
}

func (m *GateMiddleware) Authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := SessionFromContext(c)
		if session == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"state":    usecase.GateRedirecting.String(),
				"redirect": usecase.LoginRoute,
			})
		}

		// The profile fetches mirror what the gated pages need; their
		// failures don't block the gate, only loading does.
		fetches := []func(ctx context.Context) error{}
		if session.WalletConnected {
			fetches = append(fetches,
				func(ctx context.Context) error {
					m.loans.GetProfile(ctx, session.WalletAddress)
					return nil
				},
				func(ctx context.Context) error {
					m.investors.GetDashboard(ctx, session.WalletAddress)
					return nil
				},
			)
		}

		gate := m.gateFactory()
		decision := gate.Resolve(c.Request().Context(), session, fetches...)
		if decision.State != usecase.GateAuthorized {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"state":    decision.State.String(),
				"redirect": decision.Redirect,
			})
		}

		return next(c)
	}
}
