package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	caseClient "github.com/m04kA/OptiOR-SchedulingService/internal/integrations/caseservice"
	"github.com/m04kA/OptiOR-SchedulingService/pkg/ptr"
)

type mockCaseClient struct {
	cases      []*domain.Case
	casesErr   error
	deletedIDs []int64
	deleteErr  error
}

func (m *mockCaseClient) GetCases(_ context.Context) ([]*domain.Case, error) {
	if m.casesErr != nil {
		return nil, m.casesErr
	}
	return m.cases, nil
}

func (m *mockCaseClient) DeleteCase(_ context.Context, caseID int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, caseID)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testCase(id int64, service string, start time.Time) *domain.Case {
	return &domain.Case{
		ID:       id,
		ORSuite:  "OR-1",
		Service:  service,
		WheelsIn: start,
	}
}

func TestService_GetCalendar_SortedByStart(t *testing.T) {
	late := testCase(1, "Cardiology", time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC))
	early := testCase(2, "Orthopedics", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	early.PatientName = ptr.Ptr("Alice")
	out := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	early.WheelsOut = &out

	svc := NewService(&mockCaseClient{cases: []*domain.Case{late, early}}, noopLogger{})

	resp, err := svc.GetCalendar(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, resp.Events, 2)

	first := resp.Events[0]
	assert.Equal(t, int64(2), first.ID)
	assert.Equal(t, "Orthopedics - Alice", first.Title)
	assert.Equal(t, "2025-03-10T08:00:00", first.Start)
	require.NotNil(t, first.End)
	assert.Equal(t, "2025-03-10T09:30:00", *first.End)

	second := resp.Events[1]
	assert.Equal(t, int64(1), second.ID)
	// Пациент не указан, конец не зафиксирован
	assert.Equal(t, "Cardiology - No Name", second.Title)
	assert.Nil(t, second.End)
}

func TestService_GetCalendar_DateFilter(t *testing.T) {
	monday := testCase(1, "Cardiology", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	tuesday := testCase(2, "Cardiology", time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC))

	svc := NewService(&mockCaseClient{cases: []*domain.Case{monday, tuesday}}, noopLogger{})

	resp, err := svc.GetCalendar(context.Background(), "2025-03-11")

	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, int64(2), resp.Events[0].ID)
}

func TestService_GetCalendar_InvalidDate(t *testing.T) {
	svc := NewService(&mockCaseClient{}, noopLogger{})

	_, err := svc.GetCalendar(context.Background(), "11.03.2025")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetCalendar_CaseServiceDown(t *testing.T) {
	svc := NewService(&mockCaseClient{casesErr: caseClient.ErrUnavailable}, noopLogger{})

	_, err := svc.GetCalendar(context.Background(), "")

	assert.ErrorIs(t, err, ErrCaseServiceUnavailable)
}

func TestService_DeleteCase(t *testing.T) {
	client := &mockCaseClient{}
	svc := NewService(client, noopLogger{})

	err := svc.DeleteCase(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, []int64{42}, client.deletedIDs)
}

func TestService_DeleteCase_NotFound(t *testing.T) {
	svc := NewService(&mockCaseClient{deleteErr: caseClient.ErrCaseNotFound}, noopLogger{})

	err := svc.DeleteCase(context.Background(), 404)

	assert.ErrorIs(t, err, ErrCaseNotFound)
}
