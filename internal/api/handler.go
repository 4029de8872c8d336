package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/merlin-analytics/chatbot-backend/internal/api/middleware"
	"github.com/merlin-analytics/chatbot-backend/internal/models"
	"github.com/merlin-analytics/chatbot-backend/internal/pipeline"
)

// Answerer is the part of the pipeline the HTTP layer needs. This allows
// mocking in tests without wiring real model clients.
type Answerer interface {
	AnswerQuestion(ctx context.Context, question string) (models.Answer, error)
	CorpusSize() int
}

type HealthResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ChunksLoaded int    `json:"chunks_loaded"`
}

type Handler struct {
	answerer Answerer
	logger   *zerolog.Logger
}

func NewHandler(answerer Answerer, logger *zerolog.Logger) *Handler {
	return &Handler{
		answerer: answerer,
		logger:   logger,
	}
}

// POST /api/v1/chat
// Body: ChatRequest
// Returns: Answer
func (h *Handler) Chat(req *restful.Request, resp *restful.Response) {
	var chatRequest models.ChatRequest
	if err := req.ReadEntity(&chatRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	ctx := req.Request.Context()

	answer, err := h.answerer.AnswerQuestion(ctx, chatRequest.Question)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyQuestion) {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Msg("Failed to answer question")
		middleware.HandleError(resp, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	h.logger.Info().
		Str("question", answer.Question).
		Bool("success", answer.Succeeded).
		Msg("Chat request handled")

	resp.WriteHeaderAndEntity(http.StatusOK, answer)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:       "healthy",
		Message:      "Chatbot backend is running!",
		ChunksLoaded: h.answerer.CorpusSize(),
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
