package submit_session

import (
	"github.com/m04kA/OptiOR-SchedulingService/internal/availability"
	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
	"github.com/m04kA/OptiOR-SchedulingService/internal/integrations/caseservice"
	"github.com/m04kA/OptiOR-SchedulingService/pkg/ptr"
)

// buildCreateRequest собирает payload создания кейса из завершенной сессии
//
// wheels_out = wheels_in + длительность: кейс, создаваемый из диалога, несет
// предсказанный интервал целиком. Заявленное время (booked_time) - введенное
// пользователем, а при его отсутствии та же длительность
func buildCreateRequest(s *domain.BookingSession) *caseservice.CreateCaseRequest {
	start := s.SlotStart()
	end := availability.SlotEnd(start, *s.DurationMinutes)

	return &caseservice.CreateCaseRequest{
		Date:           s.Date.Format(domain.DateFormat),
		Service:        s.Specialty,
		BookedTime:     bookedOrDuration(s),
		PatientName:    s.PatientName,
		ORSuite:        *s.SelectedRoom,
		WheelsIn:       caseservice.FormatTimestamp(start),
		WheelsOut:      caseservice.FormatTimestamp(end),
		ActualDuration: float64(*s.DurationMinutes),
		DoctorName:     s.SelectedSurgeon,
	}
}

// buildUpdateRequest собирает payload обновления кейса (режим редактирования)
func buildUpdateRequest(s *domain.BookingSession) *caseservice.UpdateCaseRequest {
	start := s.SlotStart()
	end := availability.SlotEnd(start, *s.DurationMinutes)

	return &caseservice.UpdateCaseRequest{
		Service:     ptr.Ptr(s.Specialty),
		PatientName: s.PatientName,
		BookedTime:  ptr.Ptr(bookedOrDuration(s)),
		ORSuite:     s.SelectedRoom,
		WheelsIn:    ptr.Ptr(caseservice.FormatTimestamp(start)),
		WheelsOut:   ptr.Ptr(caseservice.FormatTimestamp(end)),
		DoctorName:  s.SelectedSurgeon,
	}
}

// bookedOrDuration возвращает заявленное время кейса, а при его отсутствии -
// полученную длительность
func bookedOrDuration(s *domain.BookingSession) float64 {
	if s.BookedTime != nil {
		return *s.BookedTime
	}
	return float64(*s.DurationMinutes)
}
