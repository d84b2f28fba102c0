package get_analytics

import (
	"context"

	"github.com/m04kA/OptiOR-SchedulingService/internal/service/analytics/models"
)

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, period string) (*models.AnalyticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
