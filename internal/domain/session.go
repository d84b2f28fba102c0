package domain

import "time"

// SessionState represents the booking dialog state machine.
//
// Transitions:
//
//	awaiting_duration -> slots_shown        (duration obtained)
//	slots_shown       -> slot_selected      (slot chosen)
//	slot_selected     -> ready_to_submit    (surgeon chosen)
//	ready_to_submit   -> submitted          (case stored)
//
// Changing the duration or the specialty moves the session back to an
// earlier state and clears the now-stale selections.
type SessionState string

const (
	StateAwaitingDuration SessionState = "awaiting_duration"
	StateSlotsShown       SessionState = "slots_shown"
	StateSlotSelected     SessionState = "slot_selected"
	StateReadyToSubmit    SessionState = "ready_to_submit"
	StateSubmitted        SessionState = "submitted"
)

// SessionMode distinguishes scheduling a new case from editing an existing one.
type SessionMode string

const (
	ModeCreate SessionMode = "create"
	ModeEdit   SessionMode = "edit"
)

// BookingSession holds the transient state of one open booking dialog.
// Sessions live only in memory and expire with the dialog.
type BookingSession struct {
	ID   string
	Mode SessionMode

	// Case being edited; nil in create mode. Excluded from all
	// availability checks so a case never conflicts with itself.
	EditCaseID *int64

	Date        time.Time
	Specialty   string
	PatientName *string
	BookedTime  *float64

	DurationMinutes *int
	DurationSource  *string

	SelectedRoom    *string
	SelectedHour    *int
	SelectedSurgeon *string

	State SessionState

	// Version guards against superseded in-flight results: every mutation
	// bumps it, and mutations carrying a stale version are rejected.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// IsTerminal returns true once the session has been submitted.
func (s *BookingSession) IsTerminal() bool {
	return s.State == StateSubmitted
}

// IsExpired returns true if the session TTL has elapsed.
func (s *BookingSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// HasDuration returns true if a duration has been obtained.
func (s *BookingSession) HasDuration() bool {
	return s.DurationMinutes != nil && *s.DurationMinutes > 0
}

// HasSlot returns true if a room/hour slot has been chosen.
func (s *BookingSession) HasSlot() bool {
	return s.SelectedRoom != nil && s.SelectedHour != nil
}

// HasSurgeon returns true if a surgeon has been chosen.
func (s *BookingSession) HasSurgeon() bool {
	return s.SelectedSurgeon != nil
}

// CanSelectSlot returns true if the session accepts a slot choice.
func (s *BookingSession) CanSelectSlot() bool {
	return !s.IsTerminal() && s.HasDuration()
}

// CanSelectSurgeon returns true if the session accepts a surgeon choice.
func (s *BookingSession) CanSelectSurgeon() bool {
	return !s.IsTerminal() && s.HasSlot()
}

// CanSubmit returns true if the session is complete and ready to be stored.
func (s *BookingSession) CanSubmit() bool {
	return s.State == StateReadyToSubmit && s.HasDuration() && s.HasSlot() && s.HasSurgeon()
}

// SlotStart composes the start timestamp of the selected slot.
// Returns the zero time if no slot has been chosen.
func (s *BookingSession) SlotStart() time.Time {
	if !s.HasSlot() {
		return time.Time{}
	}
	y, m, d := s.Date.Date()
	return time.Date(y, m, d, *s.SelectedHour, 0, 0, 0, s.Date.Location())
}

// ApplyDuration records an obtained duration and moves the session to the
// grid view. A previously chosen slot and surgeon are cleared: the old grid
// was computed for a different duration and is stale.
func (s *BookingSession) ApplyDuration(minutes int, source string) {
	s.DurationMinutes = &minutes
	s.DurationSource = &source
	s.SelectedRoom = nil
	s.SelectedHour = nil
	s.SelectedSurgeon = nil
	s.State = StateSlotsShown
}

// ApplySlot records a chosen slot. The surgeon selection is cleared because
// surgeon availability depends on the slot interval.
func (s *BookingSession) ApplySlot(room string, hour int) {
	s.SelectedRoom = &room
	s.SelectedHour = &hour
	s.SelectedSurgeon = nil
	s.State = StateSlotSelected
}

// ApplySurgeon records a chosen surgeon and completes the selection.
func (s *BookingSession) ApplySurgeon(name string) {
	s.SelectedSurgeon = &name
	s.State = StateReadyToSubmit
}

// ApplySpecialty changes the specialty and resets every derived choice:
// the surgeon roster, the duration and the slot all depend on it.
func (s *BookingSession) ApplySpecialty(specialty string) {
	s.Specialty = specialty
	s.DurationMinutes = nil
	s.DurationSource = nil
	s.SelectedRoom = nil
	s.SelectedHour = nil
	s.SelectedSurgeon = nil
	s.State = StateAwaitingDuration
}

// MarkSubmitted moves the session to its terminal state.
func (s *BookingSession) MarkSubmitted() {
	s.State = StateSubmitted
}
