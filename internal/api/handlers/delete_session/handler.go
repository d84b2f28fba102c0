package delete_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions"
)

const msgSessionNotFound = "сессия не найдена или истекла"

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

// Handle DELETE /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	if err := h.service.Delete(r.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("DELETE /sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("DELETE /sessions/{id} - Failed to delete session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sessions/{id} - Session discarded: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
