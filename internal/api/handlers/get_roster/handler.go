package get_roster

import (
	"errors"
	"net/http"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions"
)

const msgCaseServiceDown = "сервис кейсов недоступен"

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

// Handle GET /api/v1/roster
// Query params: specialty (optional, без нее отдаются все ростеры)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")

	result, err := h.service.GetRoster(r.Context(), specialty)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrCaseServiceUnavailable):
			h.logger.Error("GET /roster - Case service unavailable: %v", err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("GET /roster - Failed to get rosters: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /roster - %d specialties returned (specialty=%q)", len(result.Rosters), specialty)
	handlers.RespondJSON(w, http.StatusOK, result)
}
