package get_slot_grid

import (
	"context"
	"fmt"

	"github.com/m04kA/OptiOR-SchedulingService/internal/availability"
	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// UseCase use case построения сетки слотов на день
//
// Используется календарем для наложения занятости: без сессии, по одному
// снапшоту списка кейсов на запрос
type UseCase struct {
	caseClient CaseServiceClient
	engine     *availability.Engine
	rooms      []string
	hours      []int
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	caseClient CaseServiceClient,
	engine *availability.Engine,
	rooms []string,
	hours []int,
	logger Logger,
) *UseCase {
	return &UseCase{
		caseClient: caseClient,
		engine:     engine,
		rooms:      rooms,
		hours:      hours,
		logger:     logger,
	}
}

// Execute выполняет use case построения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotGrid: date=%s, duration=%d min",
		req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotGrid: validation failed: %v", err)
		return nil, err
	}

	// 2. Снапшот списка кейсов на момент запроса
	cases, err := uc.caseClient.GetCases(ctx)
	if err != nil {
		uc.logger.Error("GetSlotGrid: failed to get cases: %v", err)
		return nil, fmt.Errorf("%w: failed to get cases: %v", ErrCaseServiceUnavailable, err)
	}

	// 3. Строим полную сетку: залы x часы, занятость по снапшоту
	slots := uc.engine.EnumerateSlots(req.Date, uc.rooms, uc.hours, req.DurationMinutes, cases, req.ExcludeCaseID)

	uc.logger.Info("GetSlotGrid: built %d slots for date=%s",
		len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Slots:           toSlots(slots),
	}, nil
}

// toSlots конвертирует слоты движка доступности в модель ответа
func toSlots(candidates []domain.CandidateSlot) []Slot {
	slots := make([]Slot, len(candidates))
	for i, c := range candidates {
		slots[i] = Slot{
			Room:      c.Room,
			Hour:      c.Hour,
			Start:     c.Start,
			Available: c.Available,
		}
	}
	return slots
}
