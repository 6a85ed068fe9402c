package middleware

import (
	"net/http"
	"time"

	"github.com/henriqued25/transporte-opina/internal/errs"
	"github.com/henriqued25/transporte-opina/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// MessageTooManyRequests is returned when a client exceeds server.rate_limit.
const MessageTooManyRequests = "Muitas requisições. Tente novamente em instantes."

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns a per client IP token bucket limiter. A non-positive
// server.rate_limit disables it.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	limit := r.server.Config.Server.RateLimit
	if limit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(limit),
		Burst:     int(limit) * 2,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return &errs.HTTPError{
				Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusForbidden)),
				Message: "Não foi possível identificar o cliente.",
				Status:  http.StatusForbidden,
			}
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			// Runs ahead of EnhanceContext, so there is no request logger yet.
			r.server.Logger.Warn().
				Str("client", identifier).
				Msg("rate limit exceeded")

			return &errs.HTTPError{
				Code:     errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
				Message:  MessageTooManyRequests,
				Status:   http.StatusTooManyRequests,
				Override: true,
			}
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event when New Relic is enabled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
	rateLimitHits.WithLabelValues(endpoint).Inc()
}
