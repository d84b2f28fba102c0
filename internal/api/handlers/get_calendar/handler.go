package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/calendar"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/calendar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Дата опциональна: без нее отдается весь календарь
	date := r.URL.Query().Get("date")

	result, err := h.service.GetCalendar(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidInput):
			h.logger.Warn("GET /calendar - Invalid date %q: %v", date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, calendar.ErrCaseServiceUnavailable):
			h.logger.Error("GET /calendar - Case service unavailable: %v", err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendar - %d events returned (date=%q)", len(result.Events), date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
