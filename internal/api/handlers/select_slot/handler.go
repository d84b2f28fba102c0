package select_slot

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
	msgUnknownSlot        = "слот вне настроенной сетки"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgDurationNotSet     = "сначала нужно получить длительность операции"
	msgVersionConflict    = "сессия изменилась, обновите диалог"
	msgSlotTaken          = "слот уже занят, выберите другой"
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

// Handle POST /api/v1/sessions/{sessionId}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	var req models.SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SelectSlot(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/slot - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sessions.ErrUnknownSlot):
			h.logger.Warn("POST /sessions/{id}/slot - Slot outside grid: session_id=%s, room=%s, hour=%d",
				sessionID, req.Room, req.Hour)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/slot - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrInvalidState):
			h.logger.Warn("POST /sessions/{id}/slot - Duration not set yet: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgDurationNotSet)

		case errors.Is(err, sessions.ErrVersionConflict):
			h.logger.Warn("POST /sessions/{id}/slot - Stale version %d: session_id=%s", req.Version, sessionID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, sessions.ErrSlotTaken):
			h.logger.Warn("POST /sessions/{id}/slot - Slot taken: session_id=%s, room=%s, hour=%d",
				sessionID, req.Room, req.Hour)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, sessions.ErrCaseServiceUnavailable):
			h.logger.Error("POST /sessions/{id}/slot - Case service unavailable: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("POST /sessions/{id}/slot - Failed to select slot: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/slot - Slot selected: session_id=%s, room=%s, hour=%d",
		sessionID, req.Room, req.Hour)
	handlers.RespondJSON(w, http.StatusOK, result)
}
