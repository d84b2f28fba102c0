package get_roster

import (
	"context"

	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions/models"
)

type SessionService interface {
	GetRoster(ctx context.Context, specialty string) (*models.RosterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
