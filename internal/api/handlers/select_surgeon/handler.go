package select_surgeon

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
	msgUnknownSurgeon     = "хирург не входит в ростер специальности"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgSlotNotSelected    = "сначала нужно выбрать слот"
	msgVersionConflict    = "сессия изменилась, обновите диалог"
	msgSurgeonBusy        = "хирург занят в этом интервале"
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

// Handle POST /api/v1/sessions/{sessionId}/surgeon
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	var req models.SelectSurgeonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/surgeon - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SelectSurgeon(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/surgeon - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sessions.ErrUnknownSurgeon):
			h.logger.Warn("POST /sessions/{id}/surgeon - Surgeon not in roster: session_id=%s, surgeon=%s",
				sessionID, req.Surgeon)
			handlers.RespondBadRequest(w, msgUnknownSurgeon)

		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/surgeon - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrInvalidState):
			h.logger.Warn("POST /sessions/{id}/surgeon - Slot not selected yet: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSlotNotSelected)

		case errors.Is(err, sessions.ErrVersionConflict):
			h.logger.Warn("POST /sessions/{id}/surgeon - Stale version %d: session_id=%s", req.Version, sessionID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, sessions.ErrSurgeonBusy):
			h.logger.Warn("POST /sessions/{id}/surgeon - Surgeon busy: session_id=%s, surgeon=%s",
				sessionID, req.Surgeon)
			handlers.RespondConflict(w, msgSurgeonBusy)

		case errors.Is(err, sessions.ErrCaseServiceUnavailable):
			h.logger.Error("POST /sessions/{id}/surgeon - Case service unavailable: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("POST /sessions/{id}/surgeon - Failed to select surgeon: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/surgeon - Surgeon selected: session_id=%s, surgeon=%s, state=%s",
		sessionID, req.Surgeon, result.State)
	handlers.RespondJSON(w, http.StatusOK, result)
}
