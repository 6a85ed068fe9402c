package middleware

import (
	"net/http"

	"github.com/henriqued25/transporte-opina/internal/errs"
	"github.com/henriqued25/transporte-opina/internal/server"
	"github.com/henriqued25/transporte-opina/internal/sqlerr"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured by server.cors_allowed_origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	})
}

// RequestLogger emits one "API" log line per request, at a level chosen from
// the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// When a handler returns an error the response is not written yet;
			// the global error handler decides the final status.
			// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns handler panics into 500 responses.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure adds standard security-related headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// statusOf returns the status the error handler will answer err with.
func statusOf(err error) int {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch {
		case echoErr.Code == http.StatusMethodNotAllowed:
			return http.StatusNotFound
		case echoErr.Code >= http.StatusInternalServerError:
			return http.StatusInternalServerError
		}
		return echoErr.Code
	}

	return errs.StatusOf(sqlerr.HandleError(err))
}

// toHTTPError converts any error reaching the error handler into the
// response schema.
//
//   - *errs.HTTPError: as is
//   - echo 404/405 (no route for this path and method): "Rota não encontrada."
//   - other *echo.HTTPError: its status with a generic text
//   - anything else: classified by sqlerr, which never leaks driver text
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch {
		case echoErr.Code == http.StatusNotFound, echoErr.Code == http.StatusMethodNotAllowed:
			return errs.NewNotFoundError(errs.MessageRouteNotFound, true, nil)
		case echoErr.Code >= http.StatusInternalServerError:
			return errs.NewInternalServerError()
		default:
			message := http.StatusText(echoErr.Code)
			if msg, ok := echoErr.Message.(string); ok && msg != "" {
				message = msg
			}
			return &errs.HTTPError{
				Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
				Message: message,
				Status:  echoErr.Code,
			}
		}
	}

	var converted *errs.HTTPError
	if errors.As(sqlerr.HandleError(err), &converted) {
		return converted
	}

	return errs.NewInternalServerError()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error ends up here. The original error is logged with the
// request-scoped logger (5xx at error level, 4xx at warn level) and the
// client receives the sanitized HTTPError.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err
	httpErr := toHTTPError(err)

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}

	e.
		Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}

	_ = c.JSON(httpErr.Status, httpErr)
}
