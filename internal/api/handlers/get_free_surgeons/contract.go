package get_free_surgeons

import (
	"context"

	getFreeSurgeons "github.com/m04kA/OptiOR-SchedulingService/internal/usecase/get_free_surgeons"
)

type GetFreeSurgeonsUseCase interface {
	Execute(ctx context.Context, req *getFreeSurgeons.Request) (*getFreeSurgeons.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
