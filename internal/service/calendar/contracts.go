package calendar

import (
	"context"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// CaseServiceClient интерфейс клиента для CaseService
type CaseServiceClient interface {
	GetCases(ctx context.Context) ([]*domain.Case, error)
	DeleteCase(ctx context.Context, caseID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
