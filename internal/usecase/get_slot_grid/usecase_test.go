package get_slot_grid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/OptiOR-SchedulingService/internal/availability"
	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
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

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(client *mockCaseClient) *UseCase {
	engine := availability.NewEngine(domain.DefaultFallbackCaseMinutes)
	return NewUseCase(client, engine, []string{"OR-1", "OR-2"}, []int{9, 10, 11}, noopLogger{})
}

func testDate() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func caseInRoom(id int64, room string, hour, minutes int) *domain.Case {
	start := time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(minutes) * time.Minute)
	return &domain.Case{
		ID:        id,
		ORSuite:   room,
		Service:   "Cardiology",
		WheelsIn:  start,
		WheelsOut: &end,
	}
}

func TestUseCase_Execute_EmptyDayAllAvailable(t *testing.T) {
	uc := newTestUseCase(&mockCaseClient{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate(),
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)

	// Внешний порядок - залы, внутренний - часы по возрастанию
	assert.Equal(t, "OR-1", resp.Slots[0].Room)
	assert.Equal(t, 9, resp.Slots[0].Hour)
	assert.Equal(t, "OR-1", resp.Slots[2].Room)
	assert.Equal(t, 11, resp.Slots[2].Hour)
	assert.Equal(t, "OR-2", resp.Slots[3].Room)
	assert.Equal(t, 9, resp.Slots[3].Hour)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestUseCase_Execute_BusySlotsKeptInGrid(t *testing.T) {
	// OR-1 занят 9:00-10:30: часы 9 и 10 конфликтуют для часового кандидата
	client := &mockCaseClient{cases: []*domain.Case{caseInRoom(1, "OR-1", 9, 90)}}
	uc := newTestUseCase(client)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate(),
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)

	available := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		available[slot.Room+"-"+slot.Start.Format("15:04")] = slot.Available
	}

	assert.False(t, available["OR-1-09:00"])
	assert.False(t, available["OR-1-10:00"])
	assert.True(t, available["OR-1-11:00"])
	assert.True(t, available["OR-2-09:00"])
	assert.True(t, available["OR-2-10:00"])
}

func TestUseCase_Execute_ExcludedCaseFreesItsSlot(t *testing.T) {
	client := &mockCaseClient{cases: []*domain.Case{caseInRoom(7, "OR-1", 9, 60)}}
	uc := newTestUseCase(client)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate(),
		DurationMinutes: 60,
		ExcludeCaseID:   ptr.Ptr(int64(7)),
	})

	require.NoError(t, err)
	assert.True(t, resp.Slots[0].Available, "edited case must not conflict with itself")
}

func TestUseCase_Execute_NonPositiveDurationRejected(t *testing.T) {
	uc := newTestUseCase(&mockCaseClient{})

	for _, minutes := range []int{0, -15} {
		_, err := uc.Execute(context.Background(), &Request{
			Date:            testDate(),
			DurationMinutes: minutes,
		})
		assert.ErrorIs(t, err, ErrInvalidDuration)
	}
}

func TestUseCase_Execute_MissingDateRejected(t *testing.T) {
	uc := newTestUseCase(&mockCaseClient{})

	_, err := uc.Execute(context.Background(), &Request{DurationMinutes: 60})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_CaseServiceDown(t *testing.T) {
	uc := newTestUseCase(&mockCaseClient{casesErr: errors.New("connection refused")})

	_, err := uc.Execute(context.Background(), &Request{
		Date:            testDate(),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrCaseServiceUnavailable)
}
