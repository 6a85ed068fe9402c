package repository

import (
	"github.com/henriqued25/transporte-opina/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Feedback *FeedbackRepository
}

// NewRepositories constructs the repository container on top of the
// connection pool owned by s.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Feedback: NewFeedbackRepository(s.DB, s.Logger),
	}
}
