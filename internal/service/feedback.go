package service

import (
	"context"

	"github.com/henriqued25/transporte-opina/internal/errs"
	"github.com/henriqued25/transporte-opina/internal/model/feedback"
)

// MessageFeedbackNotFound is returned whenever an id matches no feedback.
const MessageFeedbackNotFound = "Feedback não encontrado."

// FeedbackRepository is what FeedbackService needs from the storage layer.
type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, payload *feedback.CreateFeedbackPayload) (int64, error)
	ListFeedbacks(ctx context.Context) ([]feedback.Feedback, error)
	GetFeedbackByID(ctx context.Context, id int64) (*feedback.Feedback, error)
	UpdateFeedback(ctx context.Context, id int64, changes []feedback.Change) (int64, error)
	DeleteFeedback(ctx context.Context, id int64) (int64, error)
}

type FeedbackService struct {
	repo FeedbackRepository
}

func NewFeedbackService(repo FeedbackRepository) *FeedbackService {
	return &FeedbackService{
		repo: repo,
	}
}

func notFound() *errs.HTTPError {
	return errs.NewNotFoundError(MessageFeedbackNotFound, true, nil)
}

func (s *FeedbackService) CreateFeedback(ctx context.Context, payload *feedback.CreateFeedbackPayload) (int64, error) {
	return s.repo.CreateFeedback(ctx, payload)
}

// ListFeedbacks never returns a nil slice, so an empty table encodes as [].
func (s *FeedbackService) ListFeedbacks(ctx context.Context) ([]feedback.Feedback, error) {
	feedbacks, err := s.repo.ListFeedbacks(ctx)
	if err != nil {
		return nil, err
	}

	if feedbacks == nil {
		feedbacks = []feedback.Feedback{}
	}

	return feedbacks, nil
}

func (s *FeedbackService) GetFeedbackByID(ctx context.Context, id int64) (*feedback.Feedback, error) {
	record, err := s.repo.GetFeedbackByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if record == nil {
		return nil, notFound()
	}

	return record, nil
}

// UpdateFeedback applies changes and returns the current record.
//
// changed is false when the record exists but every value already matched.
// A missing record is a 404.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, id int64, changes []feedback.Change) (*feedback.Feedback, bool, error) {
	affected, err := s.repo.UpdateFeedback(ctx, id, changes)
	if err != nil {
		return nil, false, err
	}

	record, err := s.repo.GetFeedbackByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if record == nil {
		return nil, false, notFound()
	}

	return record, affected > 0, nil
}

func (s *FeedbackService) DeleteFeedback(ctx context.Context, id int64) error {
	affected, err := s.repo.DeleteFeedback(ctx, id)
	if err != nil {
		return err
	}

	if affected == 0 {
		return notFound()
	}

	return nil
}
