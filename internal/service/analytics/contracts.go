package analytics

import (
	"context"
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	"github.com/m04kA/OptiOR-SchedulingService/internal/integrations/predictservice"
)

// CaseServiceClient интерфейс клиента для CaseService
type CaseServiceClient interface {
	GetCases(ctx context.Context) ([]*domain.Case, error)
}

// PredictServiceClient интерфейс клиента для PredictService
type PredictServiceClient interface {
	PredictSuggestion(ctx context.Context, req *predictservice.SuggestionRequest) (float64, error)
	PredictAverageWithGracefulDegradation(ctx context.Context, service, date string) (float64, string, error)
	Retrain(ctx context.Context) (*predictservice.RetrainResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
