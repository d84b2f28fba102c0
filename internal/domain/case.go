package domain

import (
	"strings"
	"time"
)

// Case represents one surgery occupying an operating room.
type Case struct {
	ID      int64
	ORSuite string
	Service string

	// Booked duration in minutes, as entered at scheduling time
	BookedTime *float64

	WheelsIn  time.Time
	WheelsOut *time.Time

	// Actual (or predicted) duration in minutes
	ActualDuration *float64

	PatientName *string
	DoctorName  *string

	IsPrediction bool
}

// HasSurgeon returns true if the case has an assigned surgeon.
func (c *Case) HasSurgeon() bool {
	return c.DoctorName != nil && strings.TrimSpace(*c.DoctorName) != ""
}

// HasActualDuration returns true if the case has a recorded duration.
func (c *Case) HasActualDuration() bool {
	return c.ActualDuration != nil && *c.ActualDuration > 0
}

// Title builds the calendar display title for the case.
func (c *Case) Title() string {
	patient := UnknownPatientLabel
	if c.PatientName != nil && strings.TrimSpace(*c.PatientName) != "" {
		patient = *c.PatientName
	}
	return c.Service + " - " + patient
}

// IsOnDate returns true if the case starts on the given calendar day.
func (c *Case) IsOnDate(date time.Time) bool {
	y1, m1, d1 := c.WheelsIn.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
