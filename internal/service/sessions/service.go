package sessions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/OptiOR-SchedulingService/internal/availability"
	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	sessionRepo "github.com/m04kA/OptiOR-SchedulingService/internal/infra/storage/session"
	"github.com/m04kA/OptiOR-SchedulingService/internal/integrations/predictservice"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions/models"
)

// Schedule дневная сетка планирования: залы и часы начала слотов
type Schedule struct {
	Rooms []string
	Hours []int
}

// Service сервис сессий бронирования
// Ведёт диалог планирования кейса: получение длительности, выбор слота,
// выбор хирурга. Каждая операция работает по свежему снапшоту кейсов.
type Service struct {
	sessionRepo     SessionRepository
	caseClient      CaseServiceClient
	predictClient   PredictServiceClient
	engine          *availability.Engine
	schedule        Schedule
	sessionTTL      time.Duration
	fallbackMinutes int
	logger          Logger
	timeProvider    TimeProvider
	newID           func() string
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	caseClient CaseServiceClient,
	predictClient PredictServiceClient,
	engine *availability.Engine,
	schedule Schedule,
	sessionTTL time.Duration,
	fallbackMinutes int,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:     sessionRepo,
		caseClient:      caseClient,
		predictClient:   predictClient,
		engine:          engine,
		schedule:        schedule,
		sessionTTL:      sessionTTL,
		fallbackMinutes: fallbackMinutes,
		logger:          logger,
		timeProvider:    &RealTimeProvider{},
		newID:           uuid.NewString,
	}
}

// Create открывает сессию бронирования
// В режиме edit данные кейса (специальность, пациент, заявленное время)
// подтягиваются из CaseService, а сам кейс исключается из всех проверок
// доступности - кейс не должен конфликтовать сам с собой
func (s *Service) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Create: opening %s session, date=%s", req.Mode, req.Date)

	mode := domain.SessionMode(req.Mode)
	if mode != domain.ModeCreate && mode != domain.ModeEdit {
		s.logger.Warn("Create: unknown mode %q", req.Mode)
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}

	session := &domain.BookingSession{
		ID:    s.newID(),
		Mode:  mode,
		State: domain.StateAwaitingDuration,
	}

	switch mode {
	case domain.ModeCreate:
		date, err := time.Parse(domain.DateFormat, req.Date)
		if err != nil {
			s.logger.Warn("Create: invalid date %q", req.Date)
			return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
		}
		if strings.TrimSpace(req.Specialty) == "" {
			s.logger.Warn("Create: specialty is required in create mode")
			return nil, fmt.Errorf("%w: specialty is required", ErrInvalidInput)
		}
		session.Date = date
		session.Specialty = req.Specialty
		session.PatientName = req.PatientName
		session.BookedTime = req.BookedTime

	case domain.ModeEdit:
		if req.CaseID == nil {
			s.logger.Warn("Create: caseId is required in edit mode")
			return nil, fmt.Errorf("%w: caseId is required in edit mode", ErrInvalidInput)
		}
		edited, err := s.findCase(ctx, *req.CaseID)
		if err != nil {
			return nil, err
		}
		y, m, d := edited.WheelsIn.Date()
		session.EditCaseID = req.CaseID
		session.Date = time.Date(y, m, d, 0, 0, 0, 0, edited.WheelsIn.Location())
		session.Specialty = edited.Service
		session.PatientName = edited.PatientName
		session.BookedTime = edited.BookedTime
	}

	session.ExpiresAt = s.timeProvider.Now().Add(s.sessionTTL)

	created, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: opened session id=%s mode=%s specialty=%s", created.ID, created.Mode, created.Specialty)
	return models.FromDomainSession(created, nil, nil), nil
}

// GetByID возвращает состояние сессии
// Сетка слотов и список свободных хирургов пересчитываются по свежему
// списку кейсов, а не берутся из сохранённого состояния
func (s *Service) GetByID(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%s", sessionID)

	session, err := s.loadSession(ctx, "GetByID", sessionID)
	if err != nil {
		return nil, err
	}

	grid, freeSurgeons, err := s.recomputeView(ctx, "GetByID", session)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSession(session, grid, freeSurgeons), nil
}

// SetDuration получает длительность операции и применяет её к сессии
// Смена специальности в этом же запросе сначала сбрасывает все производные
// выборы. Ранее выбранные слот и хирург очищаются всегда: старая сетка
// считалась для другой длительности
func (s *Service) SetDuration(ctx context.Context, sessionID string, req *models.SetDurationRequest) (*models.SessionResponse, error) {
	s.logger.Info("SetDuration: session id=%s version=%d", sessionID, req.Version)

	session, err := s.loadSession(ctx, "SetDuration", sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsTerminal() {
		s.logger.Warn("SetDuration: session id=%s already submitted", sessionID)
		return nil, ErrInvalidState
	}

	// Мутация, обогнанная более новой, отбрасывается
	if req.Version != session.Version {
		s.logger.Warn("SetDuration: stale version=%d for session id=%s (current=%d)", req.Version, sessionID, session.Version)
		return nil, ErrVersionConflict
	}

	if req.Specialty != nil && *req.Specialty != session.Specialty {
		s.logger.Info("SetDuration: specialty changed to %s for session id=%s", *req.Specialty, sessionID)
		session.ApplySpecialty(*req.Specialty)
	}
	if req.PatientName != nil {
		session.PatientName = req.PatientName
	}
	if req.BookedTime != nil {
		session.BookedTime = req.BookedTime
	}

	minutes, source := s.resolveDuration(ctx, session)
	session.ApplyDuration(minutes, source)

	// Снапшот кейсов берём до сохранения: при недоступности CaseService
	// состояние сессии остаётся нетронутым
	cases, err := s.fetchCases(ctx, "SetDuration")
	if err != nil {
		return nil, err
	}

	updated, err := s.saveSession(ctx, "SetDuration", session)
	if err != nil {
		return nil, err
	}

	grid := s.engine.EnumerateSlots(updated.Date, s.schedule.Rooms, s.schedule.Hours, *updated.DurationMinutes, cases, updated.EditCaseID)

	s.logger.Info("SetDuration: session id=%s duration=%d min (source=%s)", sessionID, minutes, source)
	return models.FromDomainSession(updated, grid, nil), nil
}

// SelectSlot выбирает слот (зал + час) для сессии
// Слот проверяется по свежему снапшоту кейсов: занятый с момента показа
// сетки слот отклоняется, состояние сессии не меняется
func (s *Service) SelectSlot(ctx context.Context, sessionID string, req *models.SelectSlotRequest) (*models.SessionResponse, error) {
	s.logger.Info("SelectSlot: session id=%s room=%s hour=%d", sessionID, req.Room, req.Hour)

	session, err := s.loadSession(ctx, "SelectSlot", sessionID)
	if err != nil {
		return nil, err
	}

	if !session.CanSelectSlot() {
		s.logger.Warn("SelectSlot: session id=%s in state=%s cannot select a slot", sessionID, session.State)
		return nil, ErrInvalidState
	}

	if req.Version != session.Version {
		s.logger.Warn("SelectSlot: stale version=%d for session id=%s (current=%d)", req.Version, sessionID, session.Version)
		return nil, ErrVersionConflict
	}

	// Слот выбирается только из настроенной сетки
	if !s.isConfiguredSlot(req.Room, req.Hour) {
		s.logger.Warn("SelectSlot: slot %s %02d:00 outside configured grid", req.Room, req.Hour)
		return nil, fmt.Errorf("%w: %s %02d:00", ErrUnknownSlot, req.Room, req.Hour)
	}

	// Весь снапшот берём до сохранения: при недоступности CaseService
	// состояние сессии остаётся нетронутым
	cases, err := s.fetchCases(ctx, "SelectSlot")
	if err != nil {
		return nil, err
	}
	roster, err := s.fetchRoster(ctx, "SelectSlot", session.Specialty)
	if err != nil {
		return nil, err
	}

	start := availability.SlotStartAt(session.Date, req.Hour)
	if !s.engine.IsRoomFree(req.Room, start, *session.DurationMinutes, cases, session.EditCaseID) {
		s.logger.Warn("SelectSlot: slot %s %02d:00 already taken on %s", req.Room, req.Hour, session.Date.Format(domain.DateFormat))
		return nil, ErrSlotTaken
	}

	session.ApplySlot(req.Room, req.Hour)

	updated, err := s.saveSession(ctx, "SelectSlot", session)
	if err != nil {
		return nil, err
	}

	// Вид строится по тому же снапшоту, что и проверка
	grid := s.engine.EnumerateSlots(updated.Date, s.schedule.Rooms, s.schedule.Hours, *updated.DurationMinutes, cases, updated.EditCaseID)
	freeSurgeons := s.engine.FreeSurgeons(roster, updated.SlotStart(), *updated.DurationMinutes, cases, updated.EditCaseID)

	s.logger.Info("SelectSlot: session id=%s selected %s %02d:00, %d surgeons free", sessionID, req.Room, req.Hour, len(freeSurgeons))
	return models.FromDomainSession(updated, grid, freeSurgeons), nil
}

// SelectSurgeon выбирает хирурга для сессии
// Хирург должен входить в ростер специальности и быть свободен в выбранном
// слоте по свежему снапшоту кейсов
func (s *Service) SelectSurgeon(ctx context.Context, sessionID string, req *models.SelectSurgeonRequest) (*models.SessionResponse, error) {
	s.logger.Info("SelectSurgeon: session id=%s surgeon=%s", sessionID, req.Surgeon)

	session, err := s.loadSession(ctx, "SelectSurgeon", sessionID)
	if err != nil {
		return nil, err
	}

	if !session.CanSelectSurgeon() {
		s.logger.Warn("SelectSurgeon: session id=%s in state=%s cannot select a surgeon", sessionID, session.State)
		return nil, ErrInvalidState
	}

	if req.Version != session.Version {
		s.logger.Warn("SelectSurgeon: stale version=%d for session id=%s (current=%d)", req.Version, sessionID, session.Version)
		return nil, ErrVersionConflict
	}

	roster, err := s.fetchRoster(ctx, "SelectSurgeon", session.Specialty)
	if err != nil {
		return nil, err
	}
	if !containsString(roster, req.Surgeon) {
		s.logger.Warn("SelectSurgeon: surgeon=%s not in roster for specialty=%s", req.Surgeon, session.Specialty)
		return nil, fmt.Errorf("%w: %s", ErrUnknownSurgeon, req.Surgeon)
	}

	cases, err := s.fetchCases(ctx, "SelectSurgeon")
	if err != nil {
		return nil, err
	}

	if !s.engine.IsSurgeonFree(req.Surgeon, session.SlotStart(), *session.DurationMinutes, cases, session.EditCaseID) {
		s.logger.Warn("SelectSurgeon: surgeon=%s busy at %s on %s", req.Surgeon, session.SlotStart().Format(domain.TimeFormat), session.Date.Format(domain.DateFormat))
		return nil, ErrSurgeonBusy
	}

	session.ApplySurgeon(req.Surgeon)

	updated, err := s.saveSession(ctx, "SelectSurgeon", session)
	if err != nil {
		return nil, err
	}

	grid := s.engine.EnumerateSlots(updated.Date, s.schedule.Rooms, s.schedule.Hours, *updated.DurationMinutes, cases, updated.EditCaseID)
	freeSurgeons := s.engine.FreeSurgeons(roster, updated.SlotStart(), *updated.DurationMinutes, cases, updated.EditCaseID)

	s.logger.Info("SelectSurgeon: session id=%s selected surgeon=%s, ready to submit", sessionID, req.Surgeon)
	return models.FromDomainSession(updated, grid, freeSurgeons), nil
}

// Delete закрывает сессию (аналог закрытия модального окна)
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	s.logger.Info("Delete: discarding session id=%s", sessionID)

	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Delete: session id=%s not found", sessionID)
			return ErrSessionNotFound
		}
		s.logger.Error("Delete: repository error for session id=%s: %v", sessionID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully discarded session id=%s", sessionID)
	return nil
}

// GetRoster возвращает ростеры хирургов по специальностям
// При заданной specialty сужает ответ до одной специальности; неизвестная
// специальность даёт пустой ростер, а не ошибку
func (s *Service) GetRoster(ctx context.Context, specialty string) (*models.RosterResponse, error) {
	s.logger.Info("GetRoster: fetching rosters, specialty=%q", specialty)

	rosters, err := s.caseClient.GetDoctors(ctx)
	if err != nil {
		s.logger.Error("GetRoster: failed to fetch rosters: %v", err)
		return nil, fmt.Errorf("%w: GetRoster - failed to fetch rosters: %v", ErrCaseServiceUnavailable, err)
	}

	if specialty != "" {
		roster := rosters[specialty]
		if roster == nil {
			roster = []string{}
		}
		return &models.RosterResponse{Rosters: map[string][]string{specialty: roster}}, nil
	}

	return &models.RosterResponse{Rosters: rosters}, nil
}

// Вспомогательные методы

// resolveDuration получает длительность операции по цепочке деградации:
// модель (когда известно заявленное время) -> историческое среднее ->
// значение по умолчанию из конфигурации
func (s *Service) resolveDuration(ctx context.Context, session *domain.BookingSession) (int, string) {
	dateStr := session.Date.Format(domain.DateFormat)

	if session.BookedTime != nil {
		minutes, err := s.predictClient.PredictSuggestion(ctx, &predictservice.SuggestionRequest{
			Date:       dateStr,
			Service:    session.Specialty,
			BookedTime: *session.BookedTime,
		})
		if err != nil {
			s.logger.Warn("resolveDuration: model suggestion failed for specialty=%s: %v", session.Specialty, err)
		} else if minutes > 0 {
			return int(math.Round(minutes)), domain.DurationSourceModel
		}
	}

	minutes, source, err := s.predictClient.PredictAverageWithGracefulDegradation(ctx, session.Specialty, dateStr)
	if err != nil || minutes <= 0 {
		s.logger.Warn("resolveDuration: falling back to default %d min for specialty=%s", s.fallbackMinutes, session.Specialty)
		return s.fallbackMinutes, domain.DurationSourceFallback
	}

	if source == "" {
		source = domain.DurationSourceAverage
	}
	return int(math.Round(minutes)), source
}

// recomputeView пересчитывает сетку слотов и список свободных хирургов
// по свежему снапшоту кейсов. До получения длительности не определено ни
// то, ни другое; до выбора слота возвращается сетка без фильтра хирургов
func (s *Service) recomputeView(ctx context.Context, op string, session *domain.BookingSession) ([]domain.CandidateSlot, []string, error) {
	if !session.HasDuration() {
		return nil, nil, nil
	}

	cases, err := s.fetchCases(ctx, op)
	if err != nil {
		return nil, nil, err
	}

	grid := s.engine.EnumerateSlots(session.Date, s.schedule.Rooms, s.schedule.Hours, *session.DurationMinutes, cases, session.EditCaseID)

	if !session.HasSlot() {
		return grid, nil, nil
	}

	roster, err := s.fetchRoster(ctx, op, session.Specialty)
	if err != nil {
		return nil, nil, err
	}

	freeSurgeons := s.engine.FreeSurgeons(roster, session.SlotStart(), *session.DurationMinutes, cases, session.EditCaseID)
	return grid, freeSurgeons, nil
}

// loadSession загружает сессию с маппингом ошибок репозитория
func (s *Service) loadSession(ctx context.Context, op, sessionID string) (*domain.BookingSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("%s: session id=%s not found", op, sessionID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: repository error for session id=%s: %v", op, sessionID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return session, nil
}

// saveSession продлевает TTL (диалог активен) и сохраняет мутацию сессии
func (s *Service) saveSession(ctx context.Context, op string, session *domain.BookingSession) (*domain.BookingSession, error) {
	session.ExpiresAt = s.timeProvider.Now().Add(s.sessionTTL)

	updated, err := s.sessionRepo.Update(ctx, session)
	if err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrSessionNotFound):
			s.logger.Warn("%s: session id=%s disappeared during update", op, session.ID)
			return nil, ErrSessionNotFound
		case errors.Is(err, sessionRepo.ErrVersionConflict):
			s.logger.Warn("%s: version conflict for session id=%s", op, session.ID)
			return nil, ErrVersionConflict
		default:
			s.logger.Error("%s: repository error for session id=%s: %v", op, session.ID, err)
			return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}
	return updated, nil
}

// fetchCases получает свежий снапшот кейсов из CaseService
func (s *Service) fetchCases(ctx context.Context, op string) ([]*domain.Case, error) {
	cases, err := s.caseClient.GetCases(ctx)
	if err != nil {
		s.logger.Error("%s: failed to fetch cases: %v", op, err)
		return nil, fmt.Errorf("%w: %s - failed to fetch cases: %v", ErrCaseServiceUnavailable, op, err)
	}
	return cases, nil
}

// fetchRoster получает ростер хирургов для специальности
func (s *Service) fetchRoster(ctx context.Context, op, specialty string) ([]string, error) {
	rosters, err := s.caseClient.GetDoctors(ctx)
	if err != nil {
		s.logger.Error("%s: failed to fetch rosters: %v", op, err)
		return nil, fmt.Errorf("%w: %s - failed to fetch rosters: %v", ErrCaseServiceUnavailable, op, err)
	}
	return rosters[specialty], nil
}

// findCase ищет кейс по ID в свежем списке кейсов
func (s *Service) findCase(ctx context.Context, caseID int64) (*domain.Case, error) {
	cases, err := s.fetchCases(ctx, "findCase")
	if err != nil {
		return nil, err
	}

	for _, c := range cases {
		if c.ID == caseID {
			return c, nil
		}
	}

	s.logger.Warn("findCase: case id=%d not found", caseID)
	return nil, ErrCaseNotFound
}

// isConfiguredSlot проверяет, что зал и час входят в настроенную сетку
func (s *Service) isConfiguredSlot(room string, hour int) bool {
	if !containsString(s.schedule.Rooms, room) {
		return false
	}
	for _, h := range s.schedule.Hours {
		if h == hour {
			return true
		}
	}
	return false
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
