package delete_case

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/calendar"
)

const (
	msgInvalidCaseID   = "некорректный ID кейса"
	msgCaseNotFound    = "кейс не найден"
	msgCaseServiceDown = "сервис кейсов недоступен"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/cases/{caseId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	caseIDStr := vars["caseId"]

	caseID, err := strconv.ParseInt(caseIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /cases/{id} - Invalid case ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCaseID)
		return
	}

	if err := h.service.DeleteCase(r.Context(), caseID); err != nil {
		switch {
		case errors.Is(err, calendar.ErrCaseNotFound):
			h.logger.Warn("DELETE /cases/{id} - Case not found: case_id=%d", caseID)
			handlers.RespondNotFound(w, msgCaseNotFound)

		case errors.Is(err, calendar.ErrCaseServiceUnavailable):
			h.logger.Error("DELETE /cases/{id} - Case service unavailable: case_id=%d, error=%v", caseID, err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("DELETE /cases/{id} - Failed to delete case: case_id=%d, error=%v", caseID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /cases/{id} - Case deleted: case_id=%d", caseID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
