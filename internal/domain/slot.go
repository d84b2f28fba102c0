package domain

import "time"

// CandidateSlot represents one cell of the room-by-hour availability grid.
type CandidateSlot struct {
	Room      string
	Hour      int
	Start     time.Time
	Available bool
}

// StartClock returns the slot start formatted as HH:MM.
func (s *CandidateSlot) StartClock() string {
	return s.Start.Format(TimeFormat)
}

// Matches returns true if the slot is the given room/hour cell.
func (s *CandidateSlot) Matches(room string, hour int) bool {
	return s.Room == room && s.Hour == hour
}
