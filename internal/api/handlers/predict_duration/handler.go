package predict_duration

import (
	"errors"
	"net/http"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/analytics"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/analytics/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса: нужны специальность и дата YYYY-MM-DD"
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

// Handle POST /api/v1/predictions
// Предсказание деградирует до настроенного фолбэка, поэтому недоступность
// ML-сервиса здесь не превращается в 502
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.PredictDurationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /predictions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.PredictDuration(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrInvalidInput):
			h.logger.Warn("POST /predictions - Invalid input: specialty=%q, date=%q", req.Specialty, req.Date)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /predictions - Failed to predict: specialty=%q, error=%v", req.Specialty, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /predictions - Predicted %d min for specialty=%s (source=%s)",
		result.PredictedMinutes, req.Specialty, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}
