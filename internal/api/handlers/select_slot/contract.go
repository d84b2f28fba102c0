package select_slot

import (
	"context"

	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions/models"
)

type SessionService interface {
	SelectSlot(ctx context.Context, sessionID string, req *models.SelectSlotRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
