package set_duration

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgSessionSubmitted   = "сессия уже завершена"
	msgVersionConflict    = "сессия изменилась, обновите диалог"
	msgCaseServiceDown    = "сервис кейсов недоступен"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/duration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	var req models.SetDurationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/duration - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetDuration(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/duration - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/duration - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrInvalidState):
			h.logger.Warn("POST /sessions/{id}/duration - Session already submitted: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSessionSubmitted)

		case errors.Is(err, sessions.ErrVersionConflict):
			h.logger.Warn("POST /sessions/{id}/duration - Stale version %d: session_id=%s", req.Version, sessionID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, sessions.ErrCaseServiceUnavailable):
			h.logger.Error("POST /sessions/{id}/duration - Case service unavailable: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("POST /sessions/{id}/duration - Failed to set duration: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/duration - Duration set: session_id=%s, minutes=%d, source=%s",
		sessionID, *result.DurationMinutes, *result.DurationSource)
	handlers.RespondJSON(w, http.StatusOK, result)
}
