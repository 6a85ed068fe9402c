package service

import (
	"github.com/henriqued25/transporte-opina/internal/repository"
	"github.com/henriqued25/transporte-opina/internal/server"
)

type Services struct {
	Feedback *FeedbackService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Feedback: NewFeedbackService(repos.Feedback),
	}, nil
}
