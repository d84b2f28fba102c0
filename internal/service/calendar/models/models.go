package models

import (
	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// Таймстемпы событий отдаются в ISO 8601 без зоны - формат, который
// ожидает календарь на фронте
const eventTimeLayout = "2006-01-02T15:04:05"

// CaseEventProps дополнительные поля события
// Ключи повторяют формат CaseService: фронт читает их из extendedProps как есть
type CaseEventProps struct {
	ORSuite        string   `json:"or_suite"`
	Service        string   `json:"service"`
	BookedTime     *float64 `json:"booked_time"`
	ActualDuration *float64 `json:"actual_duration"`
	PatientName    *string  `json:"patient_name"`
	IsPrediction   bool     `json:"is_prediction"`
	DoctorName     *string  `json:"doctor_name"`
}

// CaseEventResponse кейс в формате календарного события
// End отсутствует, если время выезда из зала не зафиксировано
type CaseEventResponse struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Start         string         `json:"start"`
	End           *string        `json:"end"`
	ExtendedProps CaseEventProps `json:"extendedProps"`
}

// CalendarResponse лента событий календаря
type CalendarResponse struct {
	Events []CaseEventResponse `json:"events"`
}

// FromDomainCase конвертирует кейс в событие календаря
func FromDomainCase(c *domain.Case) *CaseEventResponse {
	if c == nil {
		return nil
	}

	var end *string
	if c.WheelsOut != nil {
		formatted := c.WheelsOut.Format(eventTimeLayout)
		end = &formatted
	}

	return &CaseEventResponse{
		ID:    c.ID,
		Title: c.Title(),
		Start: c.WheelsIn.Format(eventTimeLayout),
		End:   end,
		ExtendedProps: CaseEventProps{
			ORSuite:        c.ORSuite,
			Service:        c.Service,
			BookedTime:     c.BookedTime,
			ActualDuration: c.ActualDuration,
			PatientName:    c.PatientName,
			IsPrediction:   c.IsPrediction,
			DoctorName:     c.DoctorName,
		},
	}
}

// FromDomainCases конвертирует список кейсов в ленту событий
func FromDomainCases(cases []*domain.Case) *CalendarResponse {
	resp := &CalendarResponse{
		Events: make([]CaseEventResponse, 0, len(cases)),
	}

	for _, c := range cases {
		if event := FromDomainCase(c); event != nil {
			resp.Events = append(resp.Events, *event)
		}
	}

	return resp
}
