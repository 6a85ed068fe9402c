// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/henriqued25/transporte-opina/internal/handler"
	"github.com/henriqued25/transporte-opina/internal/middleware"
	"github.com/henriqued25/transporte-opina/internal/server"

	"github.com/labstack/echo/v4"
)

// APIPrefix is the base path of every feedback route.
const APIPrefix = "/api"

// NewRouter builds the Echo instance serving the whole HTTP surface.
//
// Middleware order matters: the request ID and the New Relic transaction must
// exist before the request-scoped logger is derived from them, and the
// request logger must wrap Recover so panics are logged with their final
// status.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		mw.RateLimit.Limit(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Metrics.Collect(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group(APIPrefix)
	registerFeedbackRoutes(api, h.Feedback)

	return router
}

func registerFeedbackRoutes(g *echo.Group, h *handler.FeedbackHandler) {
	feedbacks := g.Group("/feedbacks")

	feedbacks.POST("", handler.Handle(h.Handler, h.CreateFeedback, http.StatusCreated))
	feedbacks.GET("", handler.Handle(h.Handler, h.ListFeedbacks, http.StatusOK))
	feedbacks.GET("/:id", handler.Handle(h.Handler, h.GetFeedbackByID, http.StatusOK))
	feedbacks.PUT("/:id", handler.Handle(h.Handler, h.UpdateFeedback, http.StatusOK))
	feedbacks.DELETE("/:id", handler.Handle(h.Handler, h.DeleteFeedback, http.StatusOK))
}
