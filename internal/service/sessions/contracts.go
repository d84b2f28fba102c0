package sessions

import (
	"context"
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	"github.com/m04kA/OptiOR-SchedulingService/internal/integrations/predictservice"
)

// SessionRepository интерфейс репозитория сессий бронирования
type SessionRepository interface {
	Create(ctx context.Context, session *domain.BookingSession) (*domain.BookingSession, error)
	GetByID(ctx context.Context, id string) (*domain.BookingSession, error)
	Update(ctx context.Context, session *domain.BookingSession) (*domain.BookingSession, error)
	Delete(ctx context.Context, id string) error
}

// CaseServiceClient интерфейс клиента для CaseService
type CaseServiceClient interface {
	GetCases(ctx context.Context) ([]*domain.Case, error)
	GetDoctors(ctx context.Context) (map[string][]string, error)
}

// PredictServiceClient интерфейс клиента для PredictService
type PredictServiceClient interface {
	PredictSuggestion(ctx context.Context, req *predictservice.SuggestionRequest) (float64, error)
	PredictAverageWithGracefulDegradation(ctx context.Context, service, date string) (float64, string, error)
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
