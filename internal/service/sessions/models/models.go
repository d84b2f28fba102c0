package models

import (
	"time"

	"github.com/m04kA/OptiOR-SchedulingService/internal/domain"
)

// Request модели

// CreateSessionRequest запрос на открытие сессии бронирования
// В режиме edit поля specialty/patientName/bookedTime берутся из кейса,
// переданные значения игнорируются
type CreateSessionRequest struct {
	Mode        string   `json:"mode"`
	CaseID      *int64   `json:"caseId,omitempty"`
	Date        string   `json:"date"`
	Specialty   string   `json:"specialty,omitempty"`
	PatientName *string  `json:"patientName,omitempty"`
	BookedTime  *float64 `json:"bookedTime,omitempty"`
}

// SetDurationRequest запрос на получение длительности операции
// Смена специальности через этот запрос сбрасывает все производные выборы
type SetDurationRequest struct {
	Version     int64    `json:"version"`
	Specialty   *string  `json:"specialty,omitempty"`
	BookedTime  *float64 `json:"bookedTime,omitempty"`
	PatientName *string  `json:"patientName,omitempty"`
}

// SelectSlotRequest запрос на выбор слота (зал + час сетки)
type SelectSlotRequest struct {
	Version int64  `json:"version"`
	Room    string `json:"room"`
	Hour    int    `json:"hour"`
}

// SelectSurgeonRequest запрос на выбор хирурга
type SelectSurgeonRequest struct {
	Version int64  `json:"version"`
	Surgeon string `json:"surgeon"`
}

// Response модели

// SlotResponse один слот дневной сетки
type SlotResponse struct {
	Room      string `json:"room"`
	Hour      int    `json:"hour"`
	Time      string `json:"time"` // "09:00"
	Available bool   `json:"available"`
}

// SessionResponse состояние сессии бронирования
// SlotGrid присутствует, когда известна длительность; FreeSurgeons - когда
// выбран слот. Оба пересчитываются по свежему списку кейсов на каждый запрос.
type SessionResponse struct {
	SessionID       string         `json:"sessionId"`
	Mode            string         `json:"mode"`
	CaseID          *int64         `json:"caseId,omitempty"`
	State           string         `json:"state"`
	Date            string         `json:"date"`
	Specialty       string         `json:"specialty"`
	PatientName     *string        `json:"patientName,omitempty"`
	BookedTime      *float64       `json:"bookedTime,omitempty"`
	DurationMinutes *int           `json:"durationMinutes,omitempty"`
	DurationSource  *string        `json:"durationSource,omitempty"`
	SelectedRoom    *string        `json:"selectedRoom,omitempty"`
	SelectedHour    *int           `json:"selectedHour,omitempty"`
	SelectedSurgeon *string        `json:"selectedSurgeon,omitempty"`
	SlotGrid        []SlotResponse `json:"slotGrid,omitempty"`
	FreeSurgeons    []string       `json:"freeSurgeons,omitempty"`
	Version         int64          `json:"version"`
	ExpiresAt       time.Time      `json:"expiresAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// RosterResponse ростеры хирургов по специальностям
type RosterResponse struct {
	Rosters map[string][]string `json:"rosters"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель сессии в DTO
// grid и freeSurgeons опциональны (nil - не вычислялись для этого состояния)
func FromDomainSession(s *domain.BookingSession, grid []domain.CandidateSlot, freeSurgeons []string) *SessionResponse {
	if s == nil {
		return nil
	}

	return &SessionResponse{
		SessionID:       s.ID,
		Mode:            string(s.Mode),
		CaseID:          s.EditCaseID,
		State:           string(s.State),
		Date:            s.Date.Format(domain.DateFormat),
		Specialty:       s.Specialty,
		PatientName:     s.PatientName,
		BookedTime:      s.BookedTime,
		DurationMinutes: s.DurationMinutes,
		DurationSource:  s.DurationSource,
		SelectedRoom:    s.SelectedRoom,
		SelectedHour:    s.SelectedHour,
		SelectedSurgeon: s.SelectedSurgeon,
		SlotGrid:        FromDomainSlots(grid),
		FreeSurgeons:    freeSurgeons,
		Version:         s.Version,
		ExpiresAt:       s.ExpiresAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainSlots конвертирует сетку слотов в DTO
func FromDomainSlots(slots []domain.CandidateSlot) []SlotResponse {
	if slots == nil {
		return nil
	}

	result := make([]SlotResponse, len(slots))
	for i, slot := range slots {
		result[i] = SlotResponse{
			Room:      slot.Room,
			Hour:      slot.Hour,
			Time:      slot.StartClock(),
			Available: slot.Available,
		}
	}

	return result
}
