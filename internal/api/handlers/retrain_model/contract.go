package retrain_model

import (
	"context"

	"github.com/m04kA/OptiOR-SchedulingService/internal/service/analytics/models"
)

type AnalyticsService interface {
	Retrain(ctx context.Context) (*models.RetrainResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
