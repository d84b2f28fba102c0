package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OptiOR-SchedulingService/internal/availability"
	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	sessionRepo "github.com/m04kA/OptiOR-SchedulingService/internal/infra/storage/session"
	"github.com/m04kA/OptiOR-SchedulingService/internal/integrations/predictservice"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/sessions/models"
	"github.com/m04kA/OptiOR-SchedulingService/pkg/ptr"
)

// -- Моки внешних сервисов --

type mockCaseClient struct {
	cases      []*domain.Case
	casesErr   error
	rosters    map[string][]string
	rostersErr error
}

func (m *mockCaseClient) GetCases(_ context.Context) ([]*domain.Case, error) {
	if m.casesErr != nil {
		return nil, m.casesErr
	}
	return m.cases, nil
}

func (m *mockCaseClient) GetDoctors(_ context.Context) (map[string][]string, error) {
	if m.rostersErr != nil {
		return nil, m.rostersErr
	}
	return m.rosters, nil
}

type mockPredictClient struct {
	suggestion    float64
	suggestionErr error
	average       float64
	averageSource string
	averageErr    error
}

func (m *mockPredictClient) PredictSuggestion(_ context.Context, _ *predictservice.SuggestionRequest) (float64, error) {
	if m.suggestionErr != nil {
		return 0, m.suggestionErr
	}
	return m.suggestion, nil
}

func (m *mockPredictClient) PredictAverageWithGracefulDegradation(_ context.Context, _, _ string) (float64, string, error) {
	if m.averageErr != nil {
		return 0, "", m.averageErr
	}
	return m.average, m.averageSource, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// -- Хелперы --

const testDate = "2025-03-10"

// Тестовая сетка: 2 зала x 3 часа = 6 слотов
func newTestService(caseClient *mockCaseClient, predictClient *mockPredictClient) *Service {
	repo := sessionRepo.NewRepository()
	engine := availability.NewEngine(domain.DefaultFallbackCaseMinutes)
	schedule := Schedule{Rooms: []string{"OR-1", "OR-2"}, Hours: []int{9, 10, 11}}

	return NewService(repo, caseClient, predictClient, engine, schedule, 30*time.Minute, domain.DefaultFallbackCaseMinutes, noopLogger{})
}

func at(hour int) time.Time {
	return time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC)
}

func caseInRoom(id int64, room string, start time.Time, minutes float64) *domain.Case {
	return &domain.Case{
		ID:             id,
		ORSuite:        room,
		Service:        "Cardiology",
		WheelsIn:       start,
		ActualDuration: ptr.Ptr(minutes),
	}
}

func cardioRosters() map[string][]string {
	return map[string][]string{
		"Cardiology":  {"Dr. Heart", "Dr. Pulse", "Dr. Valve"},
		"Orthopedics": {"Dr. Bones", "Dr. Smith", "Dr. Joint"},
	}
}

func openCardioSession(t *testing.T, svc *Service) *models.SessionResponse {
	t.Helper()

	resp, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		Mode:       "create",
		Date:       testDate,
		Specialty:  "Cardiology",
		BookedTime: ptr.Ptr(120.0),
	})
	require.NoError(t, err)
	return resp
}

// -- Тесты --

func TestService_Create(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 90})

	resp := openCardioSession(t, svc)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, string(domain.ModeCreate), resp.Mode)
	assert.Equal(t, string(domain.StateAwaitingDuration), resp.State)
	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, "Cardiology", resp.Specialty)
	assert.Equal(t, int64(1), resp.Version)
	assert.Nil(t, resp.SlotGrid)
	assert.Nil(t, resp.FreeSurgeons)
}

func TestService_Create_InvalidInput(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateSessionRequest{Mode: "upsert", Date: testDate, Specialty: "Cardiology"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &models.CreateSessionRequest{Mode: "create", Date: "10.03.2025", Specialty: "Cardiology"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, &models.CreateSessionRequest{Mode: "create", Date: testDate, Specialty: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create_EditMode(t *testing.T) {
	edited := caseInRoom(7, "OR-1", at(9), 90)
	edited.Service = "Orthopedics"
	edited.PatientName = ptr.Ptr("Bob")
	edited.BookedTime = ptr.Ptr(45.0)

	caseClient := &mockCaseClient{cases: []*domain.Case{edited}, rosters: cardioRosters()}
	svc := newTestService(caseClient, &mockPredictClient{suggestion: 90})

	resp, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		Mode:   "edit",
		CaseID: ptr.Ptr(int64(7)),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.ModeEdit), resp.Mode)
	require.NotNil(t, resp.CaseID)
	assert.Equal(t, int64(7), *resp.CaseID)
	// Данные сессии подтянуты из редактируемого кейса
	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, "Orthopedics", resp.Specialty)
	require.NotNil(t, resp.PatientName)
	assert.Equal(t, "Bob", *resp.PatientName)
	require.NotNil(t, resp.BookedTime)
	assert.Equal(t, 45.0, *resp.BookedTime)
}

func TestService_Create_EditMode_CaseMissing(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{})

	_, err := svc.Create(context.Background(), &models.CreateSessionRequest{
		Mode:   "edit",
		CaseID: ptr.Ptr(int64(404)),
	})

	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestService_SetDuration_ModelSuggestion(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 90.4})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	resp, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StateSlotsShown), resp.State)
	require.NotNil(t, resp.DurationMinutes)
	assert.Equal(t, 90, *resp.DurationMinutes)
	require.NotNil(t, resp.DurationSource)
	assert.Equal(t, domain.DurationSourceModel, *resp.DurationSource)
	assert.Equal(t, int64(2), resp.Version)
	// Пустой список кейсов - вся сетка свободна
	require.Len(t, resp.SlotGrid, 6)
	for _, slot := range resp.SlotGrid {
		assert.True(t, slot.Available)
	}
}

func TestService_SetDuration_HistoricalAverage(t *testing.T) {
	svc := newTestService(
		&mockCaseClient{rosters: cardioRosters()},
		&mockPredictClient{average: 45.6, averageSource: "Historical Avg"},
	)
	ctx := context.Background()

	// Без заявленного времени модель не вызывается
	created, err := svc.Create(ctx, &models.CreateSessionRequest{Mode: "create", Date: testDate, Specialty: "Cardiology"})
	require.NoError(t, err)

	resp, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})

	require.NoError(t, err)
	require.NotNil(t, resp.DurationMinutes)
	assert.Equal(t, 46, *resp.DurationMinutes)
	require.NotNil(t, resp.DurationSource)
	assert.Equal(t, "Historical Avg", *resp.DurationSource)
}

func TestService_SetDuration_FallbackWhenPredictDown(t *testing.T) {
	svc := newTestService(
		&mockCaseClient{rosters: cardioRosters()},
		&mockPredictClient{
			suggestionErr: predictservice.ErrUnavailable,
			averageErr:    predictservice.ErrServiceDegraded,
		},
	)
	ctx := context.Background()

	created := openCardioSession(t, svc)

	resp, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})

	// Недоступность PredictService не валит диалог
	require.NoError(t, err)
	require.NotNil(t, resp.DurationMinutes)
	assert.Equal(t, domain.DefaultFallbackCaseMinutes, *resp.DurationMinutes)
	require.NotNil(t, resp.DurationSource)
	assert.Equal(t, domain.DurationSourceFallback, *resp.DurationSource)
}

func TestService_SetDuration_StaleVersionRejected(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 90})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	_, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})
	require.NoError(t, err)

	// Повтор со старой версией - результат обогнан и отбрасывается
	_, err = svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})

	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestService_SetDuration_ClearsSelectedSlot(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 90})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	afterDuration, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})
	require.NoError(t, err)

	afterSlot, err := svc.SelectSlot(ctx, created.SessionID, &models.SelectSlotRequest{Version: afterDuration.Version, Room: "OR-1", Hour: 9})
	require.NoError(t, err)
	require.Equal(t, string(domain.StateSlotSelected), afterSlot.State)

	// Новая длительность делает старую сетку недействительной - слот сброшен
	resp, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: afterSlot.Version, BookedTime: ptr.Ptr(180.0)})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StateSlotsShown), resp.State)
	assert.Nil(t, resp.SelectedRoom)
	assert.Nil(t, resp.SelectedHour)
	assert.Nil(t, resp.SelectedSurgeon)
}

func TestService_SetDuration_SpecialtyChangeResetsDialog(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 75})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	resp, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{
		Version:   created.Version,
		Specialty: ptr.Ptr("Orthopedics"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Orthopedics", resp.Specialty)
	assert.Equal(t, string(domain.StateSlotsShown), resp.State)
	assert.Nil(t, resp.SelectedRoom)
	assert.Nil(t, resp.SelectedSurgeon)
}

func TestService_SelectSlot(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 90})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	afterDuration, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})
	require.NoError(t, err)

	resp, err := svc.SelectSlot(ctx, created.SessionID, &models.SelectSlotRequest{Version: afterDuration.Version, Room: "OR-1", Hour: 10})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StateSlotSelected), resp.State)
	require.NotNil(t, resp.SelectedRoom)
	assert.Equal(t, "OR-1", *resp.SelectedRoom)
	require.NotNil(t, resp.SelectedHour)
	assert.Equal(t, 10, *resp.SelectedHour)
	// Слот выбран - показываем свободных хирургов специальности
	assert.Equal(t, []string{"Dr. Heart", "Dr. Pulse", "Dr. Valve"}, resp.FreeSurgeons)
}

func TestService_SelectSlot_Taken(t *testing.T) {
	// OR-1 занят 09:00-10:30
	caseClient := &mockCaseClient{
		cases:   []*domain.Case{caseInRoom(1, "OR-1", at(9), 90)},
		rosters: cardioRosters(),
	}
	svc := newTestService(caseClient, &mockPredictClient{suggestion: 90})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	afterDuration, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})
	require.NoError(t, err)

	_, err = svc.SelectSlot(ctx, created.SessionID, &models.SelectSlotRequest{Version: afterDuration.Version, Room: "OR-1", Hour: 10})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Выбор не применился - сессия осталась в slots_shown с той же версией
	state, err := svc.GetByID(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateSlotsShown), state.State)
	assert.Equal(t, afterDuration.Version, state.Version)
	assert.Nil(t, state.SelectedRoom)
}

func TestService_SelectSlot_OutsideGrid(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 90})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	afterDuration, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})
	require.NoError(t, err)

	_, err = svc.SelectSlot(ctx, created.SessionID, &models.SelectSlotRequest{Version: afterDuration.Version, Room: "OR-9", Hour: 10})
	assert.ErrorIs(t, err, ErrUnknownSlot)

	_, err = svc.SelectSlot(ctx, created.SessionID, &models.SelectSlotRequest{Version: afterDuration.Version, Room: "OR-1", Hour: 7})
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestService_SelectSlot_BeforeDuration(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 90})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	_, err := svc.SelectSlot(ctx, created.SessionID, &models.SelectSlotRequest{Version: created.Version, Room: "OR-1", Hour: 9})

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestService_SelectSurgeon(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 90})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	afterDuration, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})
	require.NoError(t, err)

	afterSlot, err := svc.SelectSlot(ctx, created.SessionID, &models.SelectSlotRequest{Version: afterDuration.Version, Room: "OR-1", Hour: 9})
	require.NoError(t, err)

	resp, err := svc.SelectSurgeon(ctx, created.SessionID, &models.SelectSurgeonRequest{Version: afterSlot.Version, Surgeon: "Dr. Pulse"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StateReadyToSubmit), resp.State)
	require.NotNil(t, resp.SelectedSurgeon)
	assert.Equal(t, "Dr. Pulse", *resp.SelectedSurgeon)
}

func TestService_SelectSurgeon_BusyInAnotherRoom(t *testing.T) {
	// Dr. Heart оперирует в OR-2 09:00-10:30 - занят и для слота OR-1 10:00
	busy := caseInRoom(1, "OR-2", at(9), 90)
	busy.DoctorName = ptr.Ptr("Dr. Heart")

	caseClient := &mockCaseClient{cases: []*domain.Case{busy}, rosters: cardioRosters()}
	svc := newTestService(caseClient, &mockPredictClient{suggestion: 60})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	afterDuration, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})
	require.NoError(t, err)

	afterSlot, err := svc.SelectSlot(ctx, created.SessionID, &models.SelectSlotRequest{Version: afterDuration.Version, Room: "OR-1", Hour: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Pulse", "Dr. Valve"}, afterSlot.FreeSurgeons)

	_, err = svc.SelectSurgeon(ctx, created.SessionID, &models.SelectSurgeonRequest{Version: afterSlot.Version, Surgeon: "Dr. Heart"})

	assert.ErrorIs(t, err, ErrSurgeonBusy)
}

func TestService_SelectSurgeon_NotInRoster(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 90})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	afterDuration, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})
	require.NoError(t, err)

	afterSlot, err := svc.SelectSlot(ctx, created.SessionID, &models.SelectSlotRequest{Version: afterDuration.Version, Room: "OR-2", Hour: 11})
	require.NoError(t, err)

	_, err = svc.SelectSurgeon(ctx, created.SessionID, &models.SelectSurgeonRequest{Version: afterSlot.Version, Surgeon: "Dr. Bones"})

	assert.ErrorIs(t, err, ErrUnknownSurgeon)
}

func TestService_GetByID_RecomputesFromFreshSnapshot(t *testing.T) {
	caseClient := &mockCaseClient{rosters: cardioRosters()}
	svc := newTestService(caseClient, &mockPredictClient{suggestion: 60})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	afterDuration, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})
	require.NoError(t, err)
	for _, slot := range afterDuration.SlotGrid {
		require.True(t, slot.Available)
	}

	// Пока пользователь смотрел на сетку, кто-то занял OR-1 09:00
	caseClient.cases = []*domain.Case{caseInRoom(1, "OR-1", at(9), 60)}

	resp, err := svc.GetByID(ctx, created.SessionID)

	require.NoError(t, err)
	require.Len(t, resp.SlotGrid, 6)
	for _, slot := range resp.SlotGrid {
		if slot.Room == "OR-1" && slot.Hour == 9 {
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available)
		}
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{})

	_, err := svc.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{suggestion: 90})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	err := svc.Delete(ctx, created.SessionID)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, created.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = svc.Delete(ctx, created.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_GetRoster(t *testing.T) {
	svc := newTestService(&mockCaseClient{rosters: cardioRosters()}, &mockPredictClient{})
	ctx := context.Background()

	full, err := svc.GetRoster(ctx, "")
	require.NoError(t, err)
	assert.Len(t, full.Rosters, 2)

	filtered, err := svc.GetRoster(ctx, "Cardiology")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"Cardiology": {"Dr. Heart", "Dr. Pulse", "Dr. Valve"}}, filtered.Rosters)

	unknown, err := svc.GetRoster(ctx, "Telepathy")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"Telepathy": {}}, unknown.Rosters)
}

func TestService_CaseServiceUnavailable(t *testing.T) {
	caseClient := &mockCaseClient{rosters: cardioRosters()}
	svc := newTestService(caseClient, &mockPredictClient{suggestion: 90})
	ctx := context.Background()

	created := openCardioSession(t, svc)

	caseClient.casesErr = errors.New("connection refused")

	_, err := svc.SetDuration(ctx, created.SessionID, &models.SetDurationRequest{Version: created.Version})
	assert.ErrorIs(t, err, ErrCaseServiceUnavailable)

	// Сессия не тронута: длительность не применилась, версия прежняя
	caseClient.casesErr = nil
	state, err := svc.GetByID(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateAwaitingDuration), state.State)
	assert.Equal(t, created.Version, state.Version)
}
