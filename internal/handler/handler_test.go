package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/henriqued25/transporte-opina/internal/config"
	"github.com/henriqued25/transporte-opina/internal/logger"
	"github.com/henriqued25/transporte-opina/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	cfg := config.DefaultConfig()
	cfg.Observability.HealthChecks.Enabled = false

	log := zerolog.Nop()
	return &server.Server{
		Config:        cfg,
		Logger:        &log,
		LoggerService: logger.NewLoggerService(cfg.Observability),
	}
}

type notePayload struct {
	Text  string `json:"text"`
	Extra string `json:"extra"`
}

func (p *notePayload) Validate() error { return nil }

func TestHandle_FreshPayloadPerRequest(t *testing.T) {
	h := NewHandler(newTestServer())

	var seen []notePayload
	e := echo.New()
	e.POST("/notes", Handle(h, func(c echo.Context, p *notePayload) (*notePayload, error) {
		seen = append(seen, *p)
		return p, nil
	}, http.StatusAccepted))

	for _, body := range []string{`{"text":"a","extra":"x"}`, `{"text":"b"}`} {
		req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusAccepted, rec.Code)
	}

	require.Len(t, seen, 2)
	assert.Equal(t, notePayload{Text: "a", Extra: "x"}, seen[0])
	assert.Equal(t, notePayload{Text: "b"}, seen[1])
}

func TestCheckHealth_WithoutDatabaseCheck(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

	require.NoError(t, NewHealthHandler(newTestServer()).CheckHealth(c))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "development", body["environment"])
}
