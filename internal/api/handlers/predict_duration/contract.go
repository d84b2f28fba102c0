package predict_duration

import (
	"context"

	"github.com/m04kA/OptiOR-SchedulingService/internal/service/analytics/models"
)

type AnalyticsService interface {
	PredictDuration(ctx context.Context, req *models.PredictDurationRequest) (*models.PredictDurationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
