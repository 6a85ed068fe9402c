package handler

import (
	"github.com/henriqued25/transporte-opina/internal/model/feedback"
	"github.com/henriqued25/transporte-opina/internal/server"
	"github.com/henriqued25/transporte-opina/internal/service"

	"github.com/labstack/echo/v4"
)

// Confirmation messages returned by the feedback endpoints.
const (
	MessageFeedbackCreated   = "Feedback criado com sucesso."
	MessageFeedbackUpdated   = "Feedback atualizado com sucesso."
	MessageFeedbackUnchanged = "Nenhuma alteração realizada; os dados enviados são iguais aos atuais."
	MessageFeedbackDeleted   = "Feedback excluído com sucesso."
)

type FeedbackHandler struct {
	Handler
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(s *server.Server, feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		Handler:         NewHandler(s),
		feedbackService: feedbackService,
	}
}

func (h *FeedbackHandler) CreateFeedback(c echo.Context, payload *feedback.CreateFeedbackPayload) (*feedback.CreateFeedbackResponse, error) {
	id, err := h.feedbackService.CreateFeedback(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	return &feedback.CreateFeedbackResponse{
		ID:      id,
		Message: MessageFeedbackCreated,
	}, nil
}

func (h *FeedbackHandler) ListFeedbacks(c echo.Context, _ *feedback.ListFeedbacksPayload) ([]feedback.Feedback, error) {
	return h.feedbackService.ListFeedbacks(c.Request().Context())
}

func (h *FeedbackHandler) GetFeedbackByID(c echo.Context, payload *feedback.GetFeedbackByIDPayload) (*feedback.Feedback, error) {
	return h.feedbackService.GetFeedbackByID(c.Request().Context(), payload.FeedbackID())
}

func (h *FeedbackHandler) UpdateFeedback(c echo.Context, payload *feedback.UpdateFeedbackPayload) (*feedback.UpdateFeedbackResponse, error) {
	record, changed, err := h.feedbackService.UpdateFeedback(c.Request().Context(), payload.FeedbackID(), payload.Changes())
	if err != nil {
		return nil, err
	}

	message := MessageFeedbackUpdated
	if !changed {
		message = MessageFeedbackUnchanged
	}

	return &feedback.UpdateFeedbackResponse{
		Message:  message,
		Feedback: record,
	}, nil
}

func (h *FeedbackHandler) DeleteFeedback(c echo.Context, payload *feedback.DeleteFeedbackPayload) (*feedback.MessageResponse, error) {
	if err := h.feedbackService.DeleteFeedback(c.Request().Context(), payload.FeedbackID()); err != nil {
		return nil, err
	}

	return &feedback.MessageResponse{
		Message: MessageFeedbackDeleted,
	}, nil
}
