package get_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions"
)

const (
	msgSessionNotFound = "сессия не найдена или истекла"
	msgCaseServiceDown = "сервис кейсов недоступен"
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

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	result, err := h.service.GetByID(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, sessions.ErrCaseServiceUnavailable):
			h.logger.Error("GET /sessions/{id} - Case service unavailable: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("GET /sessions/{id} - Failed to get session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sessions/{id} - Session retrieved: session_id=%s, state=%s", sessionID, result.State)
	handlers.RespondJSON(w, http.StatusOK, result)
}
