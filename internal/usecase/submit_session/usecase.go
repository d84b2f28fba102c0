package submit_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/OptiOR-SchedulingService/internal/availability"
	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	sessionRepo "github.com/m04kA/OptiOR-SchedulingService/internal/infra/storage/session"
	caseClient "github.com/m04kA/OptiOR-SchedulingService/internal/integrations/caseservice"
)

// UseCase use case подтверждения сессии бронирования
//
// Финальная запись: слот и хирург перепроверяются по свежему снапшоту
// кейсов непосредственно перед сохранением, потому что между выбором и
// подтверждением другие вкладки могли занять интервал
type UseCase struct {
	sessionRepo SessionRepository
	caseClient  CaseServiceClient
	engine      *availability.Engine
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	caseClient CaseServiceClient,
	engine *availability.Engine,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		caseClient:  caseClient,
		engine:      engine,
		logger:      logger,
	}
}

// Execute выполняет use case подтверждения сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitSession: session=%s, version=%d", req.SessionID, req.Version)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем сессию
	session, err := uc.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("SubmitSession: session %s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("SubmitSession: failed to load session %s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to load session: %v", ErrInternal, err)
	}

	// 3. Проверяем версию: устаревший запрос отбрасывается
	if req.Version != session.Version {
		uc.logger.Warn("SubmitSession: stale version %d for session %s (current %d)",
			req.Version, req.SessionID, session.Version)
		return nil, ErrVersionConflict
	}

	// 4. Проверяем готовность сессии
	if !session.CanSubmit() {
		uc.logger.Warn("SubmitSession: session %s in state %s is not ready", req.SessionID, session.State)
		return nil, ErrSessionNotReady
	}

	// 5. Свежий снапшот кейсов для финальной перепроверки
	cases, err := uc.caseClient.GetCases(ctx)
	if err != nil {
		uc.logger.Error("SubmitSession: failed to get cases: %v", err)
		return nil, fmt.Errorf("%w: failed to get cases: %v", ErrCaseServiceUnavailable, err)
	}

	start := session.SlotStart()
	duration := *session.DurationMinutes

	// 6. Перепроверяем зал
	if !uc.engine.IsRoomFree(*session.SelectedRoom, start, duration, cases, session.EditCaseID) {
		uc.logger.Warn("SubmitSession: room %s is taken at %s for session %s",
			*session.SelectedRoom, start.Format("15:04"), req.SessionID)
		return nil, ErrSlotTaken
	}

	// 7. Перепроверяем хирурга
	if !uc.engine.IsSurgeonFree(*session.SelectedSurgeon, start, duration, cases, session.EditCaseID) {
		uc.logger.Warn("SubmitSession: surgeon %s is busy at %s for session %s",
			*session.SelectedSurgeon, start.Format("15:04"), req.SessionID)
		return nil, ErrSurgeonBusy
	}

	// 8. Сохраняем кейс через CaseService
	caseID, err := uc.storeCase(ctx, session)
	if err != nil {
		return nil, err
	}

	// 9. Помечаем сессию завершенной
	// Кейс уже сохранен во внешнем сервисе: ошибка сохранения сессии не должна
	// провоцировать повторную отправку, поэтому она логируется, но не возвращается
	session.MarkSubmitted()
	updated, err := uc.sessionRepo.Update(ctx, session)
	if err != nil {
		uc.logger.Error("SubmitSession: case id=%d stored, but session %s was not finalized: %v",
			caseID, req.SessionID, err)
		return &Response{
			SessionID: req.SessionID,
			CaseID:    caseID,
			Mode:      string(session.Mode),
			State:     string(session.State),
		}, nil
	}

	uc.logger.Info("SubmitSession: session %s submitted, case id=%d (mode=%s)",
		req.SessionID, caseID, session.Mode)

	return &Response{
		SessionID: updated.ID,
		CaseID:    caseID,
		Mode:      string(updated.Mode),
		State:     string(updated.State),
	}, nil
}

// storeCase создает или обновляет кейс в CaseService в зависимости от режима сессии
func (uc *UseCase) storeCase(ctx context.Context, session *domain.BookingSession) (int64, error) {
	if session.Mode == domain.ModeEdit {
		payload := buildUpdateRequest(session)
		if err := uc.caseClient.UpdateCase(ctx, *session.EditCaseID, payload); err != nil {
			if errors.Is(err, caseClient.ErrCaseNotFound) {
				uc.logger.Warn("SubmitSession: case id=%d disappeared during edit", *session.EditCaseID)
				return 0, ErrCaseNotFound
			}
			uc.logger.Error("SubmitSession: failed to update case id=%d: %v", *session.EditCaseID, err)
			return 0, fmt.Errorf("%w: failed to update case: %v", ErrCaseServiceUnavailable, err)
		}
		return *session.EditCaseID, nil
	}

	caseID, err := uc.caseClient.CreateCase(ctx, buildCreateRequest(session))
	if err != nil {
		uc.logger.Error("SubmitSession: failed to create case: %v", err)
		return 0, fmt.Errorf("%w: failed to create case: %v", ErrCaseServiceUnavailable, err)
	}
	return caseID, nil
}
