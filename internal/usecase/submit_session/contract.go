package submit_session

import (
	"context"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	"github.com/m04kA/OptiOR-SchedulingService/internal/integrations/caseservice"
)

// SessionRepository интерфейс репозитория сессий бронирования
type SessionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.BookingSession, error)
	Update(ctx context.Context, s *domain.BookingSession) (*domain.BookingSession, error)
}

// CaseServiceClient интерфейс клиента для CaseService
type CaseServiceClient interface {
	GetCases(ctx context.Context) ([]*domain.Case, error)
	CreateCase(ctx context.Context, payload *caseservice.CreateCaseRequest) (int64, error)
	UpdateCase(ctx context.Context, caseID int64, payload *caseservice.UpdateCaseRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
