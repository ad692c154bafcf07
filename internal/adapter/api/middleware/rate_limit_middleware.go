package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"luminafi/internal/infrastructure/ratelimit"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles an action per wallet; anonymous requests fall back to the
// client IP.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if session := SessionFromContext(c); session != nil && session.WalletAddress != "" {
				key = session.WalletAddress
			}

			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"error":       "Too many requests",
					"retry_after": wait.Seconds(),
				})
			}
			return next(c)
		}
	}
}
