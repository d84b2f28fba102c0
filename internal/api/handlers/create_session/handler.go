package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные сессии"
	msgCaseNotFound       = "редактируемый кейс не найден"
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

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: mode=%s, date=%s, error=%v", req.Mode, req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sessions.ErrCaseNotFound):
			h.logger.Warn("POST /sessions - Case not found for edit mode: %v", err)
			handlers.RespondNotFound(w, msgCaseNotFound)

		case errors.Is(err, sessions.ErrCaseServiceUnavailable):
			h.logger.Error("POST /sessions - Case service unavailable: %v", err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("POST /sessions - Failed to create session: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created: session_id=%s, mode=%s", result.SessionID, result.Mode)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
