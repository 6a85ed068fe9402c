package handler

import (
	"github.com/henriqued25/transporte-opina/internal/server"
	"github.com/henriqued25/transporte-opina/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Feedback *FeedbackHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Feedback: NewFeedbackHandler(s, services.Feedback),
	}
}
