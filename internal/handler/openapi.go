package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/henriqued25/transporte-opina/internal/server"

	"github.com/labstack/echo/v4"
)

// OpenAPIUIPath is the docs page served at /docs. It loads static/openapi.json.
const OpenAPIUIPath = "static/openapi.html"

// OpenAPIHandler serves the interactive API documentation.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI reads the docs page from disk on every request, so edits show
// up without a restart.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(OpenAPIUIPath)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
