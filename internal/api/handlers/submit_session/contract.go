package submit_session

import (
	"context"

	submitSession "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/submit_session"
)

type SubmitSessionUseCase interface {
	Execute(ctx context.Context, req *submitSession.Request) (*submitSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
