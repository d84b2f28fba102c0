package get_analytics

import (
	"errors"
	"net/http"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/analytics"
)

const (
	msgInvalidPeriod   = "некорректный период, ожидается day, month, year или all"
	msgCaseServiceDown = "сервис кейсов недоступен"
)

type Handler struct {
	service AnalyticsService
	logger  Logger
}

func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/analytics
// Query params: period (optional, day|month|year|all, по умолчанию all)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	result, err := h.service.GetAnalytics(r.Context(), period)
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrInvalidInput):
			h.logger.Warn("GET /analytics - Invalid period %q", period)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, analytics.ErrCaseServiceUnavailable):
			h.logger.Error("GET /analytics - Case service unavailable: %v", err)
			handlers.RespondBadGateway(w, msgCaseServiceDown)

		default:
			h.logger.Error("GET /analytics - Failed to build analytics: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /analytics - Analytics built: period=%s, total_cases=%d",
		result.Period, result.Status.TotalCases)
	handlers.RespondJSON(w, http.StatusOK, result)
}
