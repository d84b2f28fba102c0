package get_free_surgeons

import (
	"context"
	"fmt"

	"github.com/m04kA/OptiOR-SchedulingService/internal/availability"
)

// UseCase use case фильтрации хирургов по занятости
//
// Без интервального фильтра отдает полный ростер специальности: потребитель
// без часа и длительности получает всех, а не никого
type UseCase struct {
	caseClient CaseServiceClient
	engine     *availability.Engine
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(caseClient CaseServiceClient, engine *availability.Engine, logger Logger) *UseCase {
	return &UseCase{
		caseClient: caseClient,
		engine:     engine,
		logger:     logger,
	}
}

// Execute выполняет use case получения свободных хирургов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFreeSurgeons: specialty=%s, filtered=%t", req.Specialty, req.hasFilter())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFreeSurgeons: validation failed: %v", err)
		return nil, err
	}

	// 2. Ростер специальности; неизвестная специальность - пустой список, не ошибка
	rosters, err := uc.caseClient.GetDoctors(ctx)
	if err != nil {
		uc.logger.Error("GetFreeSurgeons: failed to get rosters: %v", err)
		return nil, fmt.Errorf("%w: failed to get rosters: %v", ErrCaseServiceUnavailable, err)
	}

	roster := rosters[req.Specialty]
	if roster == nil {
		roster = []string{}
	}

	// 3. Без интервального фильтра - полный ростер
	if !req.hasFilter() {
		return &Response{Specialty: req.Specialty, Surgeons: roster, Filtered: false}, nil
	}

	// 4. Снапшот кейсов и фильтрация по занятости на интервале
	cases, err := uc.caseClient.GetCases(ctx)
	if err != nil {
		uc.logger.Error("GetFreeSurgeons: failed to get cases: %v", err)
		return nil, fmt.Errorf("%w: failed to get cases: %v", ErrCaseServiceUnavailable, err)
	}

	start := availability.SlotStartAt(req.Date, *req.Hour)
	free := uc.engine.FreeSurgeons(roster, start, *req.DurationMinutes, cases, req.ExcludeCaseID)

	uc.logger.Info("GetFreeSurgeons: %d of %d surgeons free for specialty=%s",
		len(free), len(roster), req.Specialty)

	return &Response{Specialty: req.Specialty, Surgeons: free, Filtered: true}, nil
}
