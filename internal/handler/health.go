package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/henriqued25/transporte-opina/internal/middleware"
	"github.com/henriqued25/transporte-opina/internal/server"

	"github.com/labstack/echo/v4"
)

// HealthHandler exposes a "system" endpoint that load balancers and uptime
// monitors use to verify the service is alive and the database is reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// recordHealthEvent sends a HealthCheckError custom event when New Relic is enabled.
func (h *HealthHandler) recordHealthEvent(params map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", params)
	}
}

// CheckHealth returns system health status and dependency checks.
//
// It returns:
// - 200 OK if all checks pass
// - 503 Service Unavailable if the database check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	healthCfg := h.server.Config.Observability.HealthChecks

	// ---------------- Database connectivity check ----------------------------
	if healthCfg.Enabled {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCfg.Timeout)
		defer cancel()

		dbStart := time.Now()

		if err := h.server.DB.Ping(ctx); err != nil {
			checks["database"] = map[string]any{
				"status":        "unhealthy",
				"response_time": time.Since(dbStart).String(),
				"error":         "database unreachable",
			}

			isHealthy = false

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check failed")

			h.recordHealthEvent(map[string]any{
				"check_type":       "database",
				"operation":        "health_check",
				"error_type":       "database_unhealthy",
				"response_time_ms": time.Since(dbStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		} else {
			checks["database"] = map[string]any{
				"status":        "healthy",
				"response_time": time.Since(dbStart).String(),
			}

			logger.Debug().
				Dur("response_time", time.Since(dbStart)).
				Msg("database health check passed")
		}
	}

	// ---------------- Overall status + response ------------------------------
	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordHealthEvent(map[string]any{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
