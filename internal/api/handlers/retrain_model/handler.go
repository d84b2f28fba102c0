package retrain_model

import (
	"errors"
	"net/http"

	"github.com/m04kA/OptiOR-SchedulingService/internal/api/handlers"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/analytics"
)

const (
	msgTrainingFailed     = "переобучение модели завершилось ошибкой"
	msgPredictServiceDown = "сервис предсказаний недоступен"
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

// Handle POST /api/v1/model/retrain
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Retrain(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrTrainingFailed):
			h.logger.Error("POST /model/retrain - Training failed: %v", err)
			handlers.RespondBadGateway(w, msgTrainingFailed)

		case errors.Is(err, analytics.ErrPredictServiceUnavailable):
			h.logger.Error("POST /model/retrain - Predict service unavailable: %v", err)
			handlers.RespondBadGateway(w, msgPredictServiceDown)

		default:
			h.logger.Error("POST /model/retrain - Failed to retrain: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /model/retrain - Model retrained: status=%s", result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
