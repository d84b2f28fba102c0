package caseservice

import (
	"fmt"
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// Таймстемпы CaseService приходят в ISO 8601 без зоны ("2022-03-07T09:00:00"),
// но допускаем и полный RFC3339
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// CaseEvent модель кейса из CaseService (формат календарного события)
type CaseEvent struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Start         string            `json:"start"`
	End           *string           `json:"end"`
	ExtendedProps CaseExtendedProps `json:"extendedProps"`
}

// CaseExtendedProps дополнительные поля кейса
type CaseExtendedProps struct {
	ORSuite        string   `json:"or_suite"`
	Service        string   `json:"service"`
	BookedTime     *float64 `json:"booked_time"`
	ActualDuration *float64 `json:"actual_duration"`
	PatientName    *string  `json:"patient_name"`
	IsPrediction   bool     `json:"is_prediction"`
	DoctorName     *string  `json:"doctor_name"`
}

// ToDomainCase конвертирует событие в доменную модель кейса
func (e *CaseEvent) ToDomainCase() (*domain.Case, error) {
	start, err := parseTimestamp(e.Start)
	if err != nil {
		return nil, fmt.Errorf("case id=%d: invalid start %q: %v", e.ID, e.Start, err)
	}

	var end *time.Time
	if e.End != nil && *e.End != "" {
		parsed, err := parseTimestamp(*e.End)
		if err != nil {
			return nil, fmt.Errorf("case id=%d: invalid end %q: %v", e.ID, *e.End, err)
		}
		end = &parsed
	}

	return &domain.Case{
		ID:             e.ID,
		ORSuite:        e.ExtendedProps.ORSuite,
		Service:        e.ExtendedProps.Service,
		BookedTime:     e.ExtendedProps.BookedTime,
		WheelsIn:       start,
		WheelsOut:      end,
		ActualDuration: e.ExtendedProps.ActualDuration,
		PatientName:    e.ExtendedProps.PatientName,
		DoctorName:     e.ExtendedProps.DoctorName,
		IsPrediction:   e.ExtendedProps.IsPrediction,
	}, nil
}

// CreateCaseRequest payload создания кейса
type CreateCaseRequest struct {
	Date           string  `json:"date"`
	Service        string  `json:"service"`
	BookedTime     float64 `json:"booked_time"`
	PatientName    *string `json:"patient_name"`
	ORSuite        string  `json:"or_suite"`
	WheelsIn       string  `json:"wheels_in"`
	WheelsOut      string  `json:"wheels_out"`
	ActualDuration float64 `json:"actual_duration"`
	DoctorName     *string `json:"doctor_name,omitempty"`
}

// CreateCaseResponse ответ на создание кейса
type CreateCaseResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// UpdateCaseRequest payload частичного обновления кейса
// Отсутствующие поля не изменяются
type UpdateCaseRequest struct {
	Service     *string  `json:"service,omitempty"`
	PatientName *string  `json:"patient_name,omitempty"`
	BookedTime  *float64 `json:"booked_time,omitempty"`
	ORSuite     *string  `json:"or_suite,omitempty"`
	WheelsIn    *string  `json:"wheels_in,omitempty"`
	WheelsOut   *string  `json:"wheels_out,omitempty"`
	DoctorName  *string  `json:"doctor_name,omitempty"`
}

// ErrorResponse модель ошибки от CaseService
type ErrorResponse struct {
	Error string `json:"error"`
}

// FormatTimestamp форматирует время в формате таймстемпов CaseService
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
