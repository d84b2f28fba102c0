package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	"github.com/m04kA/OptiOR-SchedulingService/internal/integrations/predictservice"
	"github.com/m04kA/OptiOR-SchedulingService/internal/service/analytics/models"
	"github.com/m04kA/OptiOR-SchedulingService/pkg/ptr"
)

type mockCaseClient struct {
	cases    []*domain.Case
	casesErr error
}

func (m *mockCaseClient) GetCases(_ context.Context) ([]*domain.Case, error) {
	if m.casesErr != nil {
		return nil, m.casesErr
	}
	return m.cases, nil
}

type mockPredictClient struct {
	suggestion    float64
	suggestionErr error
	average       float64
	averageSource string
	averageErr    error
	retrain       *predictservice.RetrainResponse
	retrainErr    error
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

func (m *mockPredictClient) Retrain(_ context.Context) (*predictservice.RetrainResponse, error) {
	if m.retrainErr != nil {
		return nil, m.retrainErr
	}
	return m.retrain, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

// Аналитика считается относительно 2025-03-10
var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(caseClient *mockCaseClient, predictClient *mockPredictClient) *Service {
	svc := NewService(caseClient, predictClient, domain.DefaultFallbackCaseMinutes, noopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: testNow}
	return svc
}

func analyticsCase(id int64, specialty, room string, start time.Time, duration *float64, doctor *string) *domain.Case {
	return &domain.Case{
		ID:             id,
		ORSuite:        room,
		Service:        specialty,
		WheelsIn:       start,
		ActualDuration: duration,
		DoctorName:     doctor,
	}
}

func TestService_GetAnalytics(t *testing.T) {
	day := testNow
	cases := []*domain.Case{
		analyticsCase(1, "Cardiology", "OR-1", day, ptr.Ptr(90.0), ptr.Ptr("Dr. Heart")),
		analyticsCase(2, "Cardiology", "OR-2", day, ptr.Ptr(70.5), ptr.Ptr("Dr. Heart")),
		analyticsCase(3, "Orthopedics", "OR-1", day, ptr.Ptr(120.0), nil),
		// Без зафиксированной длительности: в счётчики не входит, в сводку входит
		analyticsCase(4, "Neurosurgery", "OR-3", day, nil, ptr.Ptr("Dr. Brain")),
	}

	svc := newTestService(&mockCaseClient{cases: cases}, &mockPredictClient{})

	resp, err := svc.GetAnalytics(context.Background(), "all")

	require.NoError(t, err)
	assert.Equal(t, "all", resp.Period)
	assert.Equal(t, map[string]int{"Cardiology": 2, "Orthopedics": 1}, resp.SpecialtyCounts)
	assert.Equal(t, map[string]int{"OR-1": 2, "OR-2": 1}, resp.RoomCounts)
	assert.Equal(t, map[string]int{"Dr. Heart": 2, "Unassigned": 1}, resp.SurgeonCounts)
	assert.Equal(t, map[string]float64{"Cardiology": 80.3, "Orthopedics": 120.0}, resp.AvgDurationBySpecialty)

	assert.Equal(t, 4, resp.Status.TotalCases)
	assert.Equal(t, 93.5, resp.Status.AvgDuration)
	assert.Equal(t, domain.UtilizationLow, resp.Status.Utilization)
}

func TestService_GetAnalytics_PeriodFilter(t *testing.T) {
	cases := []*domain.Case{
		analyticsCase(1, "Cardiology", "OR-1", testNow, ptr.Ptr(60.0), nil),
		analyticsCase(2, "Cardiology", "OR-1", time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), ptr.Ptr(60.0), nil),
		analyticsCase(3, "Cardiology", "OR-1", time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC), ptr.Ptr(60.0), nil),
		analyticsCase(4, "Cardiology", "OR-1", time.Date(2024, 12, 31, 9, 0, 0, 0, time.UTC), ptr.Ptr(60.0), nil),
	}
	svc := newTestService(&mockCaseClient{cases: cases}, &mockPredictClient{})
	ctx := context.Background()

	day, err := svc.GetAnalytics(ctx, "day")
	require.NoError(t, err)
	assert.Equal(t, 1, day.Status.TotalCases)

	month, err := svc.GetAnalytics(ctx, "month")
	require.NoError(t, err)
	assert.Equal(t, 2, month.Status.TotalCases)

	year, err := svc.GetAnalytics(ctx, "year")
	require.NoError(t, err)
	assert.Equal(t, 3, year.Status.TotalCases)

	all, err := svc.GetAnalytics(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "all", all.Period)
	assert.Equal(t, 4, all.Status.TotalCases)
}

func TestService_GetAnalytics_UnknownPeriod(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{})

	_, err := svc.GetAnalytics(context.Background(), "quarter")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetAnalytics_UtilizationBands(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{})
	ctx := context.Background()

	makeCases := func(n int) []*domain.Case {
		cases := make([]*domain.Case, 0, n)
		for i := 0; i < n; i++ {
			cases = append(cases, analyticsCase(int64(i+1), "Cardiology", "OR-1", testNow, ptr.Ptr(60.0), nil))
		}
		return cases
	}

	svc.caseClient = &mockCaseClient{cases: makeCases(5)}
	resp, err := svc.GetAnalytics(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, domain.UtilizationLow, resp.Status.Utilization)

	svc.caseClient = &mockCaseClient{cases: makeCases(6)}
	resp, err = svc.GetAnalytics(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, domain.UtilizationModerate, resp.Status.Utilization)

	svc.caseClient = &mockCaseClient{cases: makeCases(21)}
	resp, err = svc.GetAnalytics(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, domain.UtilizationHigh, resp.Status.Utilization)
}

func TestService_GetAnalytics_TopSurgeonsCapped(t *testing.T) {
	// 11 хирургов: по 2 операции у Dr. 00, по 1 у остальных
	var cases []*domain.Case
	id := int64(1)
	names := []string{"Dr. 00", "Dr. 01", "Dr. 02", "Dr. 03", "Dr. 04", "Dr. 05", "Dr. 06", "Dr. 07", "Dr. 08", "Dr. 09", "Dr. 10"}
	for _, name := range names {
		cases = append(cases, analyticsCase(id, "Cardiology", "OR-1", testNow, ptr.Ptr(60.0), ptr.Ptr(name)))
		id++
	}
	cases = append(cases, analyticsCase(id, "Cardiology", "OR-1", testNow, ptr.Ptr(60.0), ptr.Ptr("Dr. 00")))

	svc := newTestService(&mockCaseClient{cases: cases}, &mockPredictClient{})

	resp, err := svc.GetAnalytics(context.Background(), "all")

	require.NoError(t, err)
	assert.Len(t, resp.SurgeonCounts, 10)
	assert.Equal(t, 2, resp.SurgeonCounts["Dr. 00"])
	// При равных счётчиках топ детерминирован по имени - выпал последний
	_, kept := resp.SurgeonCounts["Dr. 09"]
	assert.True(t, kept)
	_, dropped := resp.SurgeonCounts["Dr. 10"]
	assert.False(t, dropped)
}

func TestService_GetAnalytics_CaseServiceDown(t *testing.T) {
	svc := newTestService(&mockCaseClient{casesErr: context.DeadlineExceeded}, &mockPredictClient{})

	_, err := svc.GetAnalytics(context.Background(), "all")

	assert.ErrorIs(t, err, ErrCaseServiceUnavailable)
}

func TestService_PredictDuration_Model(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{suggestion: 95.4})

	resp, err := svc.PredictDuration(context.Background(), &models.PredictDurationRequest{
		Date:       "2025-03-10",
		Specialty:  "Cardiology",
		BookedTime: ptr.Ptr(80.0),
	})

	require.NoError(t, err)
	assert.Equal(t, 95, resp.PredictedMinutes)
	assert.Equal(t, domain.DurationSourceModel, resp.Source)
	require.NotNil(t, resp.OverrunMinutes)
	assert.Equal(t, 15, *resp.OverrunMinutes)
}

func TestService_PredictDuration_AverageWhenModelFails(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{
		suggestionErr: predictservice.ErrModelNotTrained,
		average:       72,
		averageSource: "Historical Avg",
	})

	resp, err := svc.PredictDuration(context.Background(), &models.PredictDurationRequest{
		Date:       "2025-03-10",
		Specialty:  "Cardiology",
		BookedTime: ptr.Ptr(80.0),
	})

	require.NoError(t, err)
	assert.Equal(t, 72, resp.PredictedMinutes)
	assert.Equal(t, "Historical Avg", resp.Source)
	require.NotNil(t, resp.OverrunMinutes)
	// Оценка ниже заявленного времени - отрицательное превышение
	assert.Equal(t, -8, *resp.OverrunMinutes)
}

func TestService_PredictDuration_FullDegradation(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{
		suggestionErr: predictservice.ErrUnavailable,
		averageErr:    predictservice.ErrServiceDegraded,
	})

	resp, err := svc.PredictDuration(context.Background(), &models.PredictDurationRequest{
		Date:      "2025-03-10",
		Specialty: "Cardiology",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFallbackCaseMinutes, resp.PredictedMinutes)
	assert.Equal(t, domain.DurationSourceFallback, resp.Source)
	assert.Nil(t, resp.OverrunMinutes)
}

func TestService_PredictDuration_InvalidInput(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{})
	ctx := context.Background()

	_, err := svc.PredictDuration(ctx, &models.PredictDurationRequest{Date: "2025-03-10", Specialty: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.PredictDuration(ctx, &models.PredictDurationRequest{Date: "10.03.2025", Specialty: "Cardiology"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Retrain(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{
		retrain: &predictservice.RetrainResponse{Message: "Model retrained successfully", Status: "success"},
	})

	resp, err := svc.Retrain(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Model retrained successfully", resp.Message)
}

func TestService_Retrain_Failed(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{retrainErr: predictservice.ErrTrainingFailed})

	_, err := svc.Retrain(context.Background())

	assert.ErrorIs(t, err, ErrTrainingFailed)
}

func TestService_Retrain_ServiceDown(t *testing.T) {
	svc := newTestService(&mockCaseClient{}, &mockPredictClient{retrainErr: predictservice.ErrUnavailable})

	_, err := svc.Retrain(context.Background())

	assert.ErrorIs(t, err, ErrPredictServiceUnavailable)
}
